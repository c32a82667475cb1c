package shopdrawing

type SubmitDrawingDTO struct {
	DrawingNo  string `json:"drawing_no" validate:"required,max=64"`
	Title      string `json:"title" validate:"required,max=200"`
	Discipline string `json:"discipline" validate:"max=64"`
}

type ReviewDTO struct {
	Note string `json:"note" validate:"max=1000"`
}

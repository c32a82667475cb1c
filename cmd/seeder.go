package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mwicaksana/construction-management/internal/permissions"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"notifications", "material_specs", "shop_drawings", "tasks", "scope_items", "projects", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)

		seedUsers := []struct {
			Email    string
			Name     string
			Template string
		}{
			{"admin@example.com", "Site Admin", "admin"},
			{"gm@example.com", "Gita Mahardika", "general_manager"},
			{"pm@example.com", "Putu Mandala", "project_manager"},
			{"architect@example.com", "Ayu Rachmawati", "architect"},
			{"supervisor@example.com", "Surya Putra", "field_supervisor"},
			{"client@example.com", "Citra Lestari", "client"},
		}

		for _, su := range seedUsers {
			mask, ok := permissions.TemplateByName(su.Template)
			if !ok {
				log.Fatalf("unknown role template %q", su.Template)
			}

			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE email = ?", su.Email).Row()
			if err := row.Scan(&exists); err == nil {
				if err := db.Exec("UPDATE users SET capability_set = ? WHERE email = ?", uint64(mask), su.Email).Error; err != nil {
					log.Fatalf("failed to update %s: %v", su.Email, err)
				}
				fmt.Printf("User %s already exists; capability set refreshed\n", su.Email)
				continue
			}

			err := db.Exec(
				"INSERT INTO users (email, name, password_hash, is_active, capability_set, created_at, updated_at) VALUES (?, ?, ?, true, ?, now(), now())",
				su.Email, su.Name, string(hash), uint64(mask)).Error
			if err != nil {
				log.Fatalf("failed to insert %s: %v", su.Email, err)
			}
			fmt.Printf("Seeded user %s (%s)\n", su.Email, su.Template)
		}

		fmt.Println("Seeding complete. Default password for all users: password")
	},
}

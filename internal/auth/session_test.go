package auth_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"github.com/mwicaksana/construction-management/internal/auth"
)

var _ = Describe("RedisSessionStore", func() {
	var (
		server *miniredis.Miniredis
		client *redis.Client
		store  *auth.RedisSessionStore
		ctx    context.Context
	)

	quietLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	BeforeEach(func() {
		var err error
		server, err = miniredis.Run()
		Expect(err).NotTo(HaveOccurred())

		client = redis.NewClient(&redis.Options{Addr: server.Addr()})
		store = auth.NewRedisSessionStore(client, 30*time.Minute, quietLogger)
		ctx = context.Background()
	})

	AfterEach(func() {
		_ = client.Close()
		server.Close()
	})

	Describe("user snapshots", func() {
		It("round-trips a capability snapshot", func() {
			user := &auth.User{ID: 7, Email: "pm@example.com", IsActive: true, CapabilitySet: 66}
			Expect(store.PutUser(ctx, user)).To(Succeed())

			cached, ok := store.GetUser(ctx, 7)
			Expect(ok).To(BeTrue())
			Expect(cached.Email).To(Equal("pm@example.com"))
			Expect(uint64(cached.CapabilitySet)).To(Equal(uint64(66)))
		})

		It("misses for unknown users", func() {
			_, ok := store.GetUser(ctx, 999)
			Expect(ok).To(BeFalse())
		})

		It("drops snapshots on demand", func() {
			user := &auth.User{ID: 7, Email: "pm@example.com", IsActive: true}
			Expect(store.PutUser(ctx, user)).To(Succeed())
			Expect(store.DropUser(ctx, 7)).To(Succeed())

			_, ok := store.GetUser(ctx, 7)
			Expect(ok).To(BeFalse())
		})

		It("expires snapshots after the TTL", func() {
			user := &auth.User{ID: 7, Email: "pm@example.com", IsActive: true}
			Expect(store.PutUser(ctx, user)).To(Succeed())

			server.FastForward(31 * time.Minute)

			_, ok := store.GetUser(ctx, 7)
			Expect(ok).To(BeFalse())
		})

		It("drops corrupt cache entries instead of returning them", func() {
			Expect(server.Set("session:user:7", "{not json")).To(Succeed())

			_, ok := store.GetUser(ctx, 7)
			Expect(ok).To(BeFalse())
			Expect(server.Exists("session:user:7")).To(BeFalse())
		})
	})

	Describe("token revocation", func() {
		It("marks tokens revoked until their expiry", func() {
			Expect(store.RevokeToken(ctx, "some.jwt.token", time.Now().Add(time.Hour))).To(Succeed())
			Expect(store.IsTokenRevoked(ctx, "some.jwt.token")).To(BeTrue())
			Expect(store.IsTokenRevoked(ctx, "another.jwt.token")).To(BeFalse())
		})

		It("skips already-expired tokens", func() {
			Expect(store.RevokeToken(ctx, "old.jwt.token", time.Now().Add(-time.Minute))).To(Succeed())
			Expect(store.IsTokenRevoked(ctx, "old.jwt.token")).To(BeFalse())
		})

		It("forgets revocations after the token expiry passes", func() {
			Expect(store.RevokeToken(ctx, "some.jwt.token", time.Now().Add(time.Minute))).To(Succeed())

			server.FastForward(2 * time.Minute)

			Expect(store.IsTokenRevoked(ctx, "some.jwt.token")).To(BeFalse())
		})

		It("treats tokens as valid when redis is unreachable", func() {
			server.Close()
			Expect(store.IsTokenRevoked(ctx, "some.jwt.token")).To(BeFalse())
		})
	})
})

package auth_test

import (
	"errors"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/internal/auth"
)

var _ = Describe("Auth Service", func() {
	var (
		repo    *mockAuthRepo
		codec   *auth.TokenCodec
		service *auth.Service
	)

	BeforeEach(func() {
		repo = newMockAuthRepo()
		codec = auth.NewTokenCodec("test-secret-at-least-16", time.Hour)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(repo, codec, logger)

		repo.users[1] = &auth.User{
			ID:       1,
			Username: "daniel",
			Password: auth.Digest("hunter22"),
			IsActive: true,
		}
	})

	Describe("Login", func() {
		It("should issue a verifiable token for correct credentials", func() {
			token, err := service.Login(auth.LoginDTO{Username: "daniel", Password: "hunter22"})
			Expect(err).NotTo(HaveOccurred())

			claims, err := codec.Verify(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.ID).To(Equal(int64(1)))
			Expect(claims.Username).To(Equal("daniel"))
		})

		It("should stamp last login on success", func() {
			_, err := service.Login(auth.LoginDTO{Username: "daniel", Password: "hunter22"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.users[1].LastLogin).NotTo(BeZero())
		})

		It("should require a username", func() {
			_, err := service.Login(auth.LoginDTO{Password: "hunter22"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Ret).To(Equal(internal.RetValidation))
		})

		It("should require a password", func() {
			_, err := service.Login(auth.LoginDTO{Username: "daniel"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Ret).To(Equal(internal.RetValidation))
		})

		It("should reject an unknown username with the credentials error", func() {
			_, err := service.Login(auth.LoginDTO{Username: "nobody", Password: "hunter22"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Ret).To(Equal(internal.RetBadCredentials))
		})

		It("should surface a repository failure as an internal error, not bad credentials", func() {
			repo.usersErr = errors.New("connection refused")
			_, err := service.Login(auth.LoginDTO{Username: "daniel", Password: "hunter22"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Ret).To(Equal(internal.RetInternal))
		})

		It("should reject a wrong password with the same credentials error", func() {
			_, err := service.Login(auth.LoginDTO{Username: "daniel", Password: "wrong"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Ret).To(Equal(internal.RetBadCredentials))
		})

		It("should reject a frozen account even with the right password", func() {
			repo.users[1].IsActive = false
			_, err := service.Login(auth.LoginDTO{Username: "daniel", Password: "hunter22"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Ret).To(Equal(internal.RetUserFrozen))
		})
	})
})

package auth_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/internal/auth"
	"github.com/arifwid/blog-management/internal/authority"
)

type mockAuthRepo struct {
	users    map[int64]*auth.User
	keys     map[int64][]string
	keysErr  error
	usersErr error
}

func newMockAuthRepo() *mockAuthRepo {
	return &mockAuthRepo{
		users: make(map[int64]*auth.User),
		keys:  make(map[int64][]string),
	}
}

func (m *mockAuthRepo) GetByUsername(username string) (*auth.User, error) {
	if m.usersErr != nil {
		return nil, m.usersErr
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, internal.ErrRecordNotFound
}

func (m *mockAuthRepo) GetByID(id int64) (*auth.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, internal.ErrRecordNotFound
	}
	return u, nil
}

func (m *mockAuthRepo) PermissionKeys(userID int64) ([]string, error) {
	if m.keysErr != nil {
		return nil, m.keysErr
	}
	return m.keys[userID], nil
}

func (m *mockAuthRepo) UpdateLastLogin(userID int64, at time.Time) error {
	if u, ok := m.users[userID]; ok {
		u.LastLogin = at
	}
	return nil
}

var _ = Describe("Gate", func() {
	const secret = "test-secret-at-least-16"

	var (
		repo  *mockAuthRepo
		codec *auth.TokenCodec
		gate  *auth.Gate
	)

	tree := authority.Tree{
		{
			Title: "Content",
			Key:   "content",
			Children: []authority.Tab{
				{
					Title: "Articles",
					Key:   "article",
					Children: []authority.Operation{
						{Title: "Browse articles", Key: "article_management", Qualified: "ArticlesView.get"},
						{Title: "Delete article", Key: "article_edit", Qualified: "ArticleView.delete"},
					},
				},
			},
		},
	}

	testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	request := func(token string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/api/admin/articles", nil)
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		return r
	}

	issueFor := func(userID int64, username string) string {
		token, err := codec.Issue(userID, username)
		Expect(err).NotTo(HaveOccurred())
		return token
	}

	BeforeEach(func() {
		repo = newMockAuthRepo()
		codec = auth.NewTokenCodec(secret, time.Hour)
		gate = auth.NewGate(authority.BuildIndex(tree), codec, repo, testLogger)

		repo.users[1] = &auth.User{ID: 1, Username: "daniel", IsActive: true}
		repo.users[2] = &auth.User{ID: 2, Username: "root", IsActive: true, IsAdmin: true}
		repo.users[3] = &auth.User{ID: 3, Username: "frozen", IsActive: false}
		repo.keys[1] = []string{"article_management"}
	})

	It("should reject a request without a token", func() {
		_, err := gate.Authorize(request(""), "ArticlesView.get")
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Ret).To(Equal(internal.RetMissingToken))
	})

	It("should reject a malformed authorization header", func() {
		r := httptest.NewRequest(http.MethodGet, "/api/admin/articles", nil)
		r.Header.Set("Authorization", "Token abc")
		_, err := gate.Authorize(r, "ArticlesView.get")
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Ret).To(Equal(internal.RetMissingToken))
	})

	It("should reject an invalid token", func() {
		_, err := gate.Authorize(request("garbage"), "ArticlesView.get")
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Ret).To(Equal(internal.RetInvalidToken))
	})

	It("should reject an expired token before touching permissions", func() {
		stale := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
			ID:         1,
			Username:   "daniel",
			ExpireTime: time.Now().Add(-time.Hour).Unix(),
		})
		token, err := stale.SignedString([]byte(secret))
		Expect(err).NotTo(HaveOccurred())

		_, err = gate.Authorize(request(token), "ArticlesView.get")
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Ret).To(Equal(internal.RetTokenExpired))
	})

	It("should allow an operation absent from the index for any valid token", func() {
		ctx, err := gate.Authorize(request(issueFor(1, "daniel")), "MenuView.get")
		Expect(err).NotTo(HaveOccurred())

		claims, ok := auth.ClaimsFromContext(ctx)
		Expect(ok).To(BeTrue())
		Expect(claims.ID).To(Equal(int64(1)))
	})

	It("should reject a token for a deleted user on a guarded operation", func() {
		token := issueFor(1, "daniel")
		delete(repo.users, 1)

		_, err := gate.Authorize(request(token), "ArticlesView.get")
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Ret).To(Equal(internal.RetUserNotFound))
	})

	It("should reject a disabled user even with a valid token", func() {
		_, err := gate.Authorize(request(issueFor(3, "frozen")), "ArticlesView.get")
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Ret).To(Equal(internal.RetUserDisabled))
	})

	It("should allow an admin without consulting permission keys", func() {
		repo.keysErr = internal.NewInternalError("must not be called", nil)
		ctx, err := gate.Authorize(request(issueFor(2, "root")), "ArticleView.delete")
		Expect(err).NotTo(HaveOccurred())
		Expect(ctx).NotTo(BeNil())
	})

	It("should allow a user holding the operation's key", func() {
		ctx, err := gate.Authorize(request(issueFor(1, "daniel")), "ArticlesView.get")
		Expect(err).NotTo(HaveOccurred())
		Expect(ctx).NotTo(BeNil())
	})

	It("should deny a user missing the operation's key", func() {
		_, err := gate.Authorize(request(issueFor(1, "daniel")), "ArticleView.delete")
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Ret).To(Equal(internal.RetPermissionDenied))
	})

	It("should deny a user with no keys at all", func() {
		repo.keys[1] = nil
		_, err := gate.Authorize(request(issueFor(1, "daniel")), "ArticlesView.get")
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Ret).To(Equal(internal.RetPermissionDenied))
	})
})

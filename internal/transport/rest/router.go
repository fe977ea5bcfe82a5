package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/redis/go-redis/v9"

	"github.com/arifwid/blog-management/internal/article"
	"github.com/arifwid/blog-management/internal/auth"
	"github.com/arifwid/blog-management/internal/category"
	"github.com/arifwid/blog-management/internal/group"
	"github.com/arifwid/blog-management/internal/menu"
	"github.com/arifwid/blog-management/internal/mood"
	"github.com/arifwid/blog-management/internal/record"
	"github.com/arifwid/blog-management/internal/tag"
	"github.com/arifwid/blog-management/internal/transport"
	"github.com/arifwid/blog-management/internal/transport/middleware"
	"github.com/arifwid/blog-management/internal/transport/swagger"
	"github.com/arifwid/blog-management/internal/user"
)

// Handlers gathers every view handler the router mounts.
type Handlers struct {
	Auth     *auth.Handler
	Menu     *menu.Handler
	User     *user.Handler
	Group    *group.Handler
	Article  *article.Handler
	Category *category.Handler
	Tag      *tag.Handler
	Mood     *mood.Handler
	Record   *record.Handler
}

// RegisterAllRoutes mounts the back office under /api/admin behind the
// authorization gate and the public site under /api/front. The login
// route and everything under /api/front run on the ungated shell.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, redisClient *redis.Client, gate transport.Authorizer, h Handlers, openAPIPath string, logger *slog.Logger) {
	base := transport.NewBaseHandler(logger)
	gated := transport.NewShell(base, gate)
	open := transport.NewPublicShell(base)

	healthHandler := NewHealthHandler(db, redisClient)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(logger))
	router.Use(middleware.Recovery(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, openAPIPath)
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	router.Route("/api/admin", func(r chi.Router) {
		r.Handle("/token", open.Handle(h.Auth.TokenView()))

		r.Handle("/menu", gated.Handle(h.Menu.MenuView()))
		r.Handle("/permission_tree", gated.Handle(h.Menu.PermissionTreeView()))

		r.Handle("/user", gated.Handle(h.User.UserView()))
		r.Handle("/users", gated.Handle(h.User.UsersView()))
		r.Handle("/user_validity", gated.Handle(h.User.UserValidityView()))
		r.Handle("/user_search_list", gated.Handle(h.User.UserSearchListView()))

		r.Handle("/group", gated.Handle(h.Group.GroupView()))
		r.Handle("/groups", gated.Handle(h.Group.GroupsView()))
		r.Handle("/group_members", gated.Handle(h.Group.GroupMembersView()))
		r.Handle("/group_permission", gated.Handle(h.Group.GroupPermissionView()))

		r.Handle("/article", gated.Handle(h.Article.ArticleView()))
		r.Handle("/articles", gated.Handle(h.Article.ArticlesView()))

		r.Handle("/category", gated.Handle(h.Category.CategoryView()))
		r.Handle("/categories", gated.Handle(h.Category.CategoriesView()))

		r.Handle("/tag_map", gated.Handle(h.Tag.TagMapView()))

		r.Handle("/mood", gated.Handle(h.Mood.MoodView()))
		r.Handle("/moods", gated.Handle(h.Mood.MoodsView()))
	})

	router.Route("/api/front", func(r chi.Router) {
		r.Handle("/article", open.Handle(h.Article.FrontArticleView()))
		r.Handle("/articles", open.Handle(h.Article.FrontArticlesView()))
		r.Handle("/archive", open.Handle(h.Article.ArchiveView()))
		r.Handle("/categories", open.Handle(h.Category.FrontCategoriesView()))
		r.Handle("/tag_map", open.Handle(h.Tag.FrontTagMapView()))
		r.Handle("/moods", open.Handle(h.Mood.FrontMoodsView()))
		r.Handle("/records", open.Handle(h.Record.RecordsView()))
	})
}

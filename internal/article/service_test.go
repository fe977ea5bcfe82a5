package article_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/internal/article"
	articleDatamodel "github.com/arifwid/blog-management/internal/core/datamodel/article"
)

type mockArticleRepo struct {
	articles map[int64]*articleDatamodel.Article
	nextID   int64
}

func newMockArticleRepo() *mockArticleRepo {
	return &mockArticleRepo{articles: make(map[int64]*articleDatamodel.Article), nextID: 1}
}

func (m *mockArticleRepo) GetByID(id int64) (*articleDatamodel.Article, error) {
	a, ok := m.articles[id]
	if !ok {
		return nil, internal.ErrRecordNotFound
	}
	return a, nil
}

func (m *mockArticleRepo) Create(a *articleDatamodel.Article) error {
	a.ID = m.nextID
	m.nextID++
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	m.articles[a.ID] = a
	return nil
}

func (m *mockArticleRepo) Update(a *articleDatamodel.Article) error {
	a.UpdatedAt = time.Now()
	m.articles[a.ID] = a
	return nil
}

func (m *mockArticleRepo) Delete(id int64) error {
	delete(m.articles, id)
	return nil
}

func (m *mockArticleRepo) List(f article.Filters) ([]article.Row, error) {
	var rows []article.Row
	for _, a := range m.articles {
		rows = append(rows, article.Row{
			ID:        a.ID,
			Title:     a.Title,
			Excerpt:   a.Excerpt,
			Tags:      a.Tags,
			CreatedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
		})
	}
	return rows, nil
}

func (m *mockArticleRepo) CountByCategory() ([]article.ArchiveEntry, error) {
	return nil, nil
}

func (m *mockArticleRepo) AllTagLists() ([]articleDatamodel.TagIDs, error) {
	var lists []articleDatamodel.TagIDs
	for _, a := range m.articles {
		lists = append(lists, a.Tags)
	}
	return lists, nil
}

type mockTagResolver struct {
	tags   map[string]int64
	nextID int64
}

func newMockTagResolver() *mockTagResolver {
	return &mockTagResolver{tags: make(map[string]int64), nextID: 1}
}

func (m *mockTagResolver) ResolveNames(names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		id, ok := m.tags[name]
		if !ok {
			id = m.nextID
			m.nextID++
			m.tags[name] = id
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *mockTagResolver) Names(ids []int64) ([]string, error) {
	byID := make(map[int64]string, len(m.tags))
	for name, id := range m.tags {
		byID[id] = name
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func (m *mockTagResolver) IDByName(name string) (int64, error) {
	id, ok := m.tags[name]
	if !ok {
		return 0, internal.ErrRecordNotFound
	}
	return id, nil
}

func (m *mockTagResolver) NameMap() (map[int64]string, error) {
	out := make(map[int64]string, len(m.tags))
	for name, id := range m.tags {
		out[id] = name
	}
	return out, nil
}

type mockCategoryResolver struct {
	names map[int64]string
}

func (m *mockCategoryResolver) NameByID(id int64) (string, error) {
	name, ok := m.names[id]
	if !ok {
		return "", internal.ErrRecordNotFound
	}
	return name, nil
}

func (m *mockCategoryResolver) Exists(id int64) (bool, error) {
	_, ok := m.names[id]
	return ok, nil
}

type recordingVisits struct {
	counts    map[int64]int64
	forgotten []int64
}

func newRecordingVisits() *recordingVisits {
	return &recordingVisits{counts: make(map[int64]int64)}
}

func (v *recordingVisits) Incr(ctx context.Context, articleID int64) (int64, error) {
	v.counts[articleID]++
	return v.counts[articleID], nil
}

func (v *recordingVisits) Counts(ctx context.Context, articleIDs []int64) ([]int64, error) {
	out := make([]int64, len(articleIDs))
	for i, id := range articleIDs {
		out[i] = v.counts[id]
	}
	return out, nil
}

func (v *recordingVisits) Forget(ctx context.Context, articleID int64) error {
	v.forgotten = append(v.forgotten, articleID)
	delete(v.counts, articleID)
	return nil
}

var _ = Describe("Article Service", func() {
	var (
		repo       *mockArticleRepo
		tags       *mockTagResolver
		categories *mockCategoryResolver
		visits     *recordingVisits
		service    *article.Service
		ctx        context.Context
	)

	BeforeEach(func() {
		repo = newMockArticleRepo()
		tags = newMockTagResolver()
		categories = &mockCategoryResolver{names: map[int64]string{5: "golang"}}
		visits = newRecordingVisits()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = article.NewService(repo, tags, categories, visits, logger)
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("should require a title", func() {
			_, err := service.Create(article.CreateDTO{Body: "text"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Ret).To(Equal(internal.RetValidation))
		})

		It("should require a body", func() {
			_, err := service.Create(article.CreateDTO{Title: "hello"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Ret).To(Equal(internal.RetValidation))
		})

		It("should store the article with a generated excerpt", func() {
			id, err := service.Create(article.CreateDTO{
				Title: "hello",
				Body:  "# Heading\n\nbody text",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(int64(1)))

			stored := repo.articles[id]
			Expect(stored.Excerpt).To(ContainSubstring("Heading"))
			Expect(stored.Excerpt).NotTo(ContainSubstring("#"))
		})

		It("should resolve tag names to ids, creating missing tags", func() {
			id, err := service.Create(article.CreateDTO{
				Title: "hello",
				Body:  "text",
				Tags:  []string{"go", "web"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.articles[id].Tags).To(HaveLen(2))
			Expect(tags.tags).To(HaveKey("go"))
			Expect(tags.tags).To(HaveKey("web"))
		})

		It("should keep a known category", func() {
			id, err := service.Create(article.CreateDTO{Title: "t", Body: "b", CategoryID: 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.articles[id].CategoryID).NotTo(BeNil())
			Expect(*repo.articles[id].CategoryID).To(Equal(int64(5)))
		})

		It("should treat an unknown category as uncategorized", func() {
			id, err := service.Create(article.CreateDTO{Title: "t", Body: "b", CategoryID: 99})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.articles[id].CategoryID).To(BeNil())
		})

		It("should treat category zero as uncategorized", func() {
			id, err := service.Create(article.CreateDTO{Title: "t", Body: "b"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.articles[id].CategoryID).To(BeNil())
		})
	})

	Describe("Get", func() {
		var id int64

		BeforeEach(func() {
			var err error
			id, err = service.Create(article.CreateDTO{
				Title:      "hello",
				Body:       "body",
				CategoryID: 5,
				Tags:       []string{"go"},
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return the detail with category and tag names", func() {
			detail, err := service.Get(ctx, id, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Title).To(Equal("hello"))
			Expect(detail.CategoryName).To(Equal("golang"))
			Expect(detail.Tags).To(Equal([]string{"go"}))
			Expect(detail.Visit).To(BeNil())
		})

		It("should bump and report the visit count on a front read", func() {
			detail, err := service.Get(ctx, id, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Visit).NotTo(BeNil())
			Expect(*detail.Visit).To(Equal(int64(1)))

			detail, err = service.Get(ctx, id, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(*detail.Visit).To(Equal(int64(2)))
		})

		It("should not bump the count on a back-office read", func() {
			_, err := service.Get(ctx, id, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(visits.counts).To(BeEmpty())
		})

		It("should report uncategorized for an article without a category", func() {
			plainID, err := service.Create(article.CreateDTO{Title: "t", Body: "b"})
			Expect(err).NotTo(HaveOccurred())

			detail, err := service.Get(ctx, plainID, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.CategoryName).To(Equal(article.Uncategorized))
			Expect(detail.CategoryID).To(BeZero())
		})

		It("should fail for a missing article", func() {
			_, err := service.Get(ctx, 404, false)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Ret).To(Equal(internal.RetNotFound))
		})
	})

	Describe("Delete", func() {
		It("should remove the article and its visit counter", func() {
			id, err := service.Create(article.CreateDTO{Title: "t", Body: "b"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Get(ctx, id, true)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, id)).To(Succeed())
			Expect(repo.articles).To(BeEmpty())
			Expect(visits.forgotten).To(ConsistOf(id))
		})

		It("should fail for a missing article", func() {
			err := service.Delete(ctx, 404)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Ret).To(Equal(internal.RetNotFound))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			_, err := service.Create(article.CreateDTO{Title: "go post", Body: "b", Tags: []string{"go"}})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(article.CreateDTO{Title: "web post", Body: "b", Tags: []string{"web"}})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject malformed filter JSON", func() {
			_, err := service.List(ctx, "{not json")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Ret).To(Equal(internal.RetValidation))
		})

		It("should list everything without filters", func() {
			result, err := service.List(ctx, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Lists).To(HaveLen(2))
		})

		It("should filter by tag name", func() {
			result, err := service.List(ctx, `{"tag_name":"go"}`)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Lists).To(HaveLen(1))
			Expect(result.Lists[0].Title).To(Equal("go post"))
		})

		It("should return nothing for an unknown tag name", func() {
			result, err := service.List(ctx, `{"tag_name":"missing"}`)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Lists).To(BeEmpty())
		})

		It("should return nothing for an unparseable month", func() {
			result, err := service.List(ctx, `{"month":"not-a-month"}`)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Lists).To(BeEmpty())
		})

		It("should attach visit counts and second-resolution timestamps", func() {
			_, err := service.Get(ctx, 1, true)
			Expect(err).NotTo(HaveOccurred())

			result, err := service.List(ctx, "")
			Expect(err).NotTo(HaveOccurred())
			for _, entry := range result.Lists {
				Expect(entry.CreatedAt).To(MatchRegexp(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`))
				if entry.ID == 1 {
					Expect(entry.Visit).To(Equal(int64(1)))
				}
			}
		})
	})

	Describe("ArchiveByTag", func() {
		It("should count tag usage across articles", func() {
			_, err := service.Create(article.CreateDTO{Title: "a", Body: "b", Tags: []string{"go", "web"}})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(article.CreateDTO{Title: "c", Body: "d", Tags: []string{"go"}})
			Expect(err).NotTo(HaveOccurred())

			pairs, err := service.ArchiveByTag()
			Expect(err).NotTo(HaveOccurred())
			Expect(pairs).To(HaveLen(2))

			counts := make(map[string]int64, len(pairs))
			for _, pair := range pairs {
				counts[pair[0].(string)] = pair[1].(int64)
			}
			Expect(counts["go"]).To(Equal(int64(2)))
			Expect(counts["web"]).To(Equal(int64(1)))
		})
	})
})

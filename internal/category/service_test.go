package category_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/internal/article"
	"github.com/arifwid/blog-management/internal/category"
)

func TestCategoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Service Suite")
}

type mockCategoryRepo struct {
	categories map[int64]*category.Category
	nextID     int64
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[int64]*category.Category), nextID: 1}
}

func (m *mockCategoryRepo) Create(name string) error {
	m.categories[m.nextID] = &category.Category{ID: m.nextID, Name: name}
	m.nextID++
	return nil
}

func (m *mockCategoryRepo) Rename(id int64, name string) error {
	m.categories[id].Name = name
	return nil
}

func (m *mockCategoryRepo) Delete(id int64) error {
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepo) GetByID(id int64) (*category.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, internal.ErrRecordNotFound
	}
	return c, nil
}

func (m *mockCategoryRepo) ExistsByName(name string, excludeID int64) (bool, error) {
	for _, c := range m.categories {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCategoryRepo) List() ([]category.Category, error) {
	out := make([]category.Category, 0, len(m.categories))
	for id := int64(1); id < m.nextID; id++ {
		if c, ok := m.categories[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

var _ = Describe("Category Service", func() {
	var (
		repo    *mockCategoryRepo
		service *category.Service
	)

	BeforeEach(func() {
		repo = newMockCategoryRepo()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = category.NewService(repo, logger)
	})

	Describe("Create", func() {
		It("should reject a duplicate name", func() {
			Expect(service.Create("golang")).To(Succeed())
			err := service.Create("golang")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Ret).To(Equal(internal.RetDuplicateName))
		})
	})

	Describe("List", func() {
		It("should prepend the synthetic uncategorized entry", func() {
			Expect(service.Create("golang")).To(Succeed())

			categories, err := service.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(HaveLen(2))
			Expect(categories[0].ID).To(BeZero())
			Expect(categories[0].Name).To(Equal(article.Uncategorized))
			Expect(categories[1].Name).To(Equal("golang"))
		})

		It("should still show the synthetic entry when storage is empty", func() {
			categories, err := service.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(HaveLen(1))
			Expect(categories[0].ID).To(BeZero())
		})
	})

	Describe("Rename", func() {
		It("should fail for a missing category", func() {
			err := service.Rename(9, "x")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Ret).To(Equal(internal.RetNotFound))
		})

		It("should reject a name held by another category", func() {
			Expect(service.Create("golang")).To(Succeed())
			Expect(service.Create("databases")).To(Succeed())

			err := service.Rename(2, "golang")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Ret).To(Equal(internal.RetDuplicateName))
		})
	})

	Describe("Exists", func() {
		It("should report false for a missing id without an error", func() {
			exists, err := service.Exists(9)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})

		It("should report true for a stored id", func() {
			Expect(service.Create("golang")).To(Succeed())
			exists, err := service.Exists(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})
	})
})

package authority_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arifwid/blog-management/internal/authority"
)

func TestAuthority(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Authority Suite")
}

func fixtureTree() authority.Tree {
	return authority.Tree{
		{
			Title: "Content",
			Key:   "content",
			Children: []authority.Tab{
				{
					Title: "Articles",
					Key:   "article",
					Children: []authority.Operation{
						{Title: "Browse articles", Key: "article_management", Qualified: "ArticlesView.get"},
						{Title: "Create article", Key: "article_edit", Qualified: "ArticleView.post"},
						{Title: "Delete article", Key: "article_edit", Qualified: "ArticleView.delete"},
					},
				},
				{
					Title: "Moods",
					Key:   "mood",
					Children: []authority.Operation{
						{Title: "Post mood", Key: "mood_management", Qualified: "MoodView.post"},
					},
				},
			},
		},
		{
			Title: "Accounts",
			Key:   "accounts",
			Children: []authority.Tab{
				{
					Title: "Users",
					Key:   "user",
					Children: []authority.Operation{
						{Title: "Browse users", Key: "user_management", Qualified: "UsersView.get"},
					},
				},
			},
		},
	}
}

var _ = Describe("BuildIndex", func() {
	It("should index every leaf carrying a qualified identifier", func() {
		index := authority.BuildIndex(fixtureTree())
		Expect(index.Len()).To(Equal(5))

		key, ok := index.Lookup("ArticlesView.get")
		Expect(ok).To(BeTrue())
		Expect(key).To(Equal("article_management"))

		key, ok = index.Lookup("ArticleView.delete")
		Expect(ok).To(BeTrue())
		Expect(key).To(Equal("article_edit"))
	})

	It("should miss operations that are not in the tree", func() {
		index := authority.BuildIndex(fixtureTree())
		_, ok := index.Lookup("MenuView.get")
		Expect(ok).To(BeFalse())
	})

	It("should skip leaves without a qualified identifier", func() {
		tree := authority.Tree{
			{
				Title: "Content",
				Key:   "content",
				Children: []authority.Tab{
					{
						Title: "Articles",
						Key:   "article",
						Children: []authority.Operation{
							{Title: "Navigation only", Key: "article_management"},
						},
					},
				},
			},
		}
		Expect(authority.BuildIndex(tree).Len()).To(Equal(0))
	})

	It("should build an empty index from an empty tree", func() {
		Expect(authority.BuildIndex(authority.Tree{}).Len()).To(Equal(0))
	})
})

var _ = Describe("PruneMenu", func() {
	It("should return an empty menu for a non-admin with no keys", func() {
		menu := authority.PruneMenu(fixtureTree(), nil, false)
		Expect(menu).To(BeEmpty())
	})

	It("should keep every tab for an admin with leaves stripped", func() {
		menu := authority.PruneMenu(fixtureTree(), nil, true)
		Expect(menu).To(HaveLen(2))
		Expect(menu[0].Children).To(HaveLen(2))
		Expect(menu[1].Children).To(HaveLen(1))
		for _, section := range menu {
			for _, tab := range section.Children {
				Expect(tab.Children).To(BeNil())
			}
		}
	})

	It("should keep only tabs covered by the caller's keys", func() {
		menu := authority.PruneMenu(fixtureTree(), []string{"article_edit"}, false)
		Expect(menu).To(HaveLen(1))
		Expect(menu[0].Title).To(Equal("Content"))
		Expect(menu[0].Children).To(HaveLen(1))
		Expect(menu[0].Children[0].Title).To(Equal("Articles"))
		Expect(menu[0].Children[0].Children).To(BeNil())
	})

	It("should drop sections whose tabs all pruned away", func() {
		menu := authority.PruneMenu(fixtureTree(), []string{"user_management"}, false)
		Expect(menu).To(HaveLen(1))
		Expect(menu[0].Title).To(Equal("Accounts"))
	})

	It("should keep multiple tabs when keys span them", func() {
		menu := authority.PruneMenu(fixtureTree(), []string{"article_management", "mood_management"}, false)
		Expect(menu).To(HaveLen(1))
		Expect(menu[0].Children).To(HaveLen(2))
	})

	It("should ignore keys that match no tab", func() {
		menu := authority.PruneMenu(fixtureTree(), []string{"does_not_exist"}, false)
		Expect(menu).To(BeEmpty())
	})

	It("should never mutate the shared tree", func() {
		tree := fixtureTree()
		_ = authority.PruneMenu(tree, []string{"article_edit"}, false)
		_ = authority.PruneMenu(tree, nil, true)

		Expect(tree).To(HaveLen(2))
		Expect(tree[0].Children).To(HaveLen(2))
		Expect(tree[0].Children[0].Children).To(HaveLen(3))
	})

	It("should be stable when pruned twice with the same keys", func() {
		keys := []string{"article_management"}
		once := authority.PruneMenu(fixtureTree(), keys, false)
		Expect(authority.PruneMenu(once, keys, false)).To(BeEmpty())

		again := authority.PruneMenu(fixtureTree(), keys, false)
		Expect(again).To(Equal(once))
	})
})

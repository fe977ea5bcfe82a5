package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/arifwid/blog-management/internal/auth"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with an admin account and a starter editor group.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, _, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"permissions", "user_groups", "groups", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing account data")
		}

		adminName := "admin"
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE username = ?", adminName).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("admin user already exists; skipping")
		} else {
			digest := auth.Digest("admin123")
			if err := db.Exec(
				"INSERT INTO users (username, password, is_active, is_admin) VALUES (?, ?, true, true)",
				adminName, digest).Error; err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", adminName)
		}

		groupName := "editors"
		var groupID int64
		row = db.Raw("SELECT id FROM groups WHERE name = ?", groupName).Row()
		if err := row.Scan(&groupID); err != nil {
			if err := db.Exec("INSERT INTO groups (name) VALUES (?)", groupName).Error; err != nil {
				log.Fatalf("failed to insert group: %v", err)
			}
			if err := db.Raw("SELECT id FROM groups WHERE name = ?", groupName).Row().Scan(&groupID); err != nil {
				log.Fatalf("failed to read group id: %v", err)
			}
			fmt.Println("Seeded group:", groupName)
		}

		keys := []string{
			"article_management",
			"article_edit",
			"category_management",
			"mood_management",
		}
		for _, key := range keys {
			var pid int64
			row := db.Raw("SELECT id FROM permissions WHERE group_id = ? AND name = ?", groupID, key).Row()
			if err := row.Scan(&pid); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO permissions (group_id, name) VALUES (?, ?)", groupID, key).Error; err != nil {
				log.Fatalf("failed to insert permission %s: %v", key, err)
			}
		}
		fmt.Println("Seeded editor permissions")
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}

package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	seedAdminEmail    string
	seedAdminPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with an admin account and sample directory data",
	Long:  `Seed the database with an initial admin account plus a few directory entries for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initORM(cfg.Database, sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if seedAdminPassword == "" {
			log.Fatal("--admin-password is required")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}

		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE email = ?", seedAdminEmail).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("admin user already exists:", seedAdminEmail)
		} else {
			if err := db.Exec(
				"INSERT INTO users (email, name, password_hash, role, can_view, can_edit, can_export, can_manage_users, created_at, updated_at) VALUES (?, ?, ?, 'admin', true, true, true, true, now(), now())",
				seedAdminEmail, "Fleet Admin", string(hash),
			).Error; err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", seedAdminEmail)
		}

		departments := []string{"Operations", "Logistics", "Administration"}
		for _, name := range departments {
			var exists int
			row := db.Raw("SELECT 1 FROM departments WHERE name = ?", name).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO departments (name, created_at, updated_at) VALUES (?, now(), now())", name).Error; err != nil {
					log.Fatalf("failed to insert department %s: %v", name, err)
				}
				fmt.Printf("Seeded department: %s\n", name)
			}
		}

		fmt.Println("Seeding complete")
	},
}

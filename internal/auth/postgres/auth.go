package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/fleethub/fleet-management/internal/auth"
	"gorm.io/gorm"
)

// Repository implements auth.Repository against the users table.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(email string) (*auth.Account, error) {
	var a auth.Account
	query := `SELECT id, name, email, password_hash, role, can_view, can_edit, can_export, can_manage_users
	          FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role,
		&a.Permissions.CanView, &a.Permissions.CanEdit, &a.Permissions.CanExport, &a.Permissions.CanManageUsers)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repository) GetPrincipal(userID int64) (*auth.Principal, error) {
	var p auth.Principal
	query := `SELECT id, name, email, role, can_view, can_edit, can_export, can_manage_users
	          FROM users WHERE id = ?`

	row := r.db.Raw(query, userID).Row()
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Role,
		&p.Permissions.CanView, &p.Permissions.CanEdit, &p.Permissions.CanExport, &p.Permissions.CanManageUsers)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Count() (int64, error) {
	var count int64
	if err := r.db.Raw(`SELECT COUNT(*) FROM users`).Row().Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repository) Create(account *auth.Account) (int64, error) {
	now := time.Now()
	var id int64
	err := r.db.Raw(`INSERT INTO users (name, email, password_hash, role, can_view, can_edit, can_export, can_manage_users, created_at, updated_at)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		account.Name, account.Email, account.PasswordHash, account.Role,
		account.Permissions.CanView, account.Permissions.CanEdit,
		account.Permissions.CanExport, account.Permissions.CanManageUsers,
		now, now).Row().Scan(&id)
	if err != nil {
		return 0, err
	}
	account.ID = id
	return id, nil
}

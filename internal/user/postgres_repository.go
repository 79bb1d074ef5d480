package user

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"tasktracker/internal/utils"
)

// PostgresUserRepository is the alternative credential backend, selected
// with STORAGE_DRIVER=postgres. Uniqueness is enforced by the primary key
// on username.
type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(user *User) error {
	query := `
		INSERT INTO users (username, password_hash, created_at)
		VALUES ($1, $2, $3)
	`

	err := utils.WithTransaction(r.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(query, user.Username, user.PasswordHash, user.CreatedAt)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			logrus.WithField("username", user.Username).Warn("Registration rejected: username taken")
			return ErrDuplicateUsername
		}
		logrus.WithError(err).Error("Failed to create user")
		return err
	}

	logrus.WithField("username", user.Username).Info("User created successfully")
	return nil
}

func (r *PostgresUserRepository) GetByUsername(username string) (*User, error) {
	query := `
		SELECT username, password_hash, created_at
		FROM users
		WHERE username = $1
	`

	user := &User{}
	err := r.db.QueryRow(query, username).Scan(
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).Error("Failed to get user by username")
		return nil, err
	}

	return user, nil
}

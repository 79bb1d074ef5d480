package task

import (
	"database/sql"

	"github.com/sirupsen/logrus"

	"tasktracker/internal/utils"
)

// taskStoreLockID keys the advisory lock that serializes ID assignment
// across concurrent writers.
const taskStoreLockID = 874002

// PostgresTaskRepository is the alternative task backend, selected with
// STORAGE_DRIVER=postgres. It honors the same contract as the file
// backend: global max-plus-one IDs and serialized mutations.
type PostgresTaskRepository struct {
	db *sql.DB
}

func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

func (r *PostgresTaskRepository) List(owner string) ([]*Task, error) {
	query := `
		SELECT id, description, due_date, completed, owner
		FROM tasks
		WHERE owner = $1
		ORDER BY id
	`

	rows, err := r.db.Query(query, owner)
	if err != nil {
		logrus.WithError(err).Error("Failed to list tasks")
		return nil, err
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Description, &t.DueDate, &t.Completed, &t.Owner); err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *PostgresTaskRepository) Add(owner, description, dueDate string) (*Task, error) {
	task := &Task{
		Description: description,
		DueDate:     dueDate,
		Completed:   false,
		Owner:       owner,
	}

	err := utils.WithTransaction(r.db, func(tx *sql.Tx) error {
		// Advisory lock serializes ID assignment with all other adds for
		// the duration of the transaction.
		if _, err := tx.Exec(`SELECT pg_advisory_xact_lock($1)`, taskStoreLockID); err != nil {
			return err
		}

		query := `
			INSERT INTO tasks (id, description, due_date, completed, owner)
			VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM tasks), $1, $2, FALSE, $3)
			RETURNING id
		`
		return tx.QueryRow(query, description, dueDate, owner).Scan(&task.ID)
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to add task")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"task_id": task.ID,
		"owner":   owner,
	}).Info("Task added")
	return task, nil
}

func (r *PostgresTaskRepository) Complete(owner string, id int) error {
	return utils.WithTransaction(r.db, func(tx *sql.Tx) error {
		query := `
			UPDATE tasks
			SET completed = TRUE
			WHERE id = $1 AND owner = $2
		`

		result, err := tx.Exec(query, id, owner)
		if err != nil {
			logrus.WithError(err).Error("Failed to complete task")
			return err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			logrus.WithFields(logrus.Fields{
				"task_id": id,
				"owner":   owner,
			}).Warn("Task to complete not found")
			return ErrTaskNotFound
		}

		logrus.WithFields(logrus.Fields{
			"task_id": id,
			"owner":   owner,
		}).Info("Task completed")
		return nil
	})
}

func (r *PostgresTaskRepository) Delete(owner string, id int) error {
	query := `
		DELETE FROM tasks
		WHERE id = $1 AND owner = $2
	`

	if _, err := r.db.Exec(query, id, owner); err != nil {
		logrus.WithError(err).Error("Failed to delete task")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"task_id": id,
		"owner":   owner,
	}).Info("Task delete handled")
	return nil
}

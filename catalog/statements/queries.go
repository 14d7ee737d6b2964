package statements

const (
	queryCreateTable = `
		CREATE TABLE IF NOT EXISTS statements (
			statement_id      TEXT PRIMARY KEY,
			title             TEXT NOT NULL DEFAULT '',
			technology_bucket TEXT NOT NULL DEFAULT '',
			department        TEXT NOT NULL DEFAULT '',
			organisation      TEXT NOT NULL DEFAULT '',
			description       TEXT NOT NULL DEFAULT ''
		)
	`

	queryGetByID = `
		SELECT statement_id, title, technology_bucket, department, organisation, description
		FROM statements
		WHERE statement_id = $1
	`

	queryGetByIDs = `
		SELECT statement_id, title, technology_bucket, department, organisation, description
		FROM statements
		WHERE statement_id = ANY($1)
	`

	queryListAll = `
		SELECT statement_id, title, technology_bucket, department, organisation, description
		FROM statements
		ORDER BY statement_id
	`

	queryInsert = `
		INSERT INTO statements (statement_id, title, technology_bucket, department, organisation, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (statement_id) DO UPDATE
		SET title = EXCLUDED.title,
		    technology_bucket = EXCLUDED.technology_bucket,
		    department = EXCLUDED.department,
		    organisation = EXCLUDED.organisation,
		    description = EXCLUDED.description
	`

	queryCount     = `SELECT COUNT(*) FROM statements`
	queryDeleteAll = `DELETE FROM statements`
)

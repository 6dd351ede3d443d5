package database

// Schema is the DDL of the users and tasks tables. It mirrors the
// migrations directory and is applied directly to in-memory test databases.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id         VARCHAR(36)  PRIMARY KEY,
	name       VARCHAR(255) NOT NULL,
	email      VARCHAR(255) NOT NULL UNIQUE,
	password   VARCHAR(255) NOT NULL,
	role       VARCHAR(32)  NOT NULL DEFAULT 'user',
	created_at TIMESTAMP    NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id         VARCHAR(36) PRIMARY KEY,
	user_id    VARCHAR(36) NOT NULL,
	content    TEXT        NOT NULL,
	status     BOOLEAN     NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP   NOT NULL
);

CREATE INDEX idx_tasks_user_id ON tasks (user_id);
`

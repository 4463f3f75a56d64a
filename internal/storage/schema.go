package storage

// Columns stay nullable so databases created by earlier releases of the bot
// backend open without migration; reads COALESCE them.
const schema = `
-- 'users' are registered learners; the id comes from the client.
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY,
    surname TEXT,
    name TEXT,
    age INTEGER,
    address TEXT,
    email TEXT,
    telegram_name TEXT,
    aim TEXT,
    password TEXT
);

CREATE INDEX IF NOT EXISTS ix_users_id ON users (id);

-- 'tests' group questions by theme; passed_users is a comma-terminated id list.
CREATE TABLE IF NOT EXISTS tests (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    theme TEXT,
    questions TEXT,
    passed_users TEXT
);

-- 'questions' hold a phrase and its translation.
CREATE TABLE IF NOT EXISTS questions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    theme TEXT,
    text TEXT,
    ans TEXT
);
`

package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS locations (
    location_id          TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    country              TEXT
);

CREATE TABLE IF NOT EXISTS trips (
    trip_id              TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    location_id          TEXT,
    dest_name            TEXT,
    dest_country         TEXT,
    start_date           TEXT,
    end_date             TEXT,
    budget_method        TEXT,
    travel_style         TEXT,
    total_budget         REAL,
    daily_budget         REAL,
    emergency_pct        REAL NOT NULL DEFAULT 0,
    notes                TEXT,
    participants         TEXT,
    status               TEXT,
    manual_status        TEXT,
    created_at           TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trip_categories (
    trip_id              TEXT NOT NULL REFERENCES trips(trip_id) ON DELETE CASCADE,
    category             TEXT NOT NULL,
    amount               REAL NOT NULL,
    PRIMARY KEY (trip_id, category)
);

CREATE TABLE IF NOT EXISTS legs (
    leg_id               TEXT PRIMARY KEY,
    trip_id              TEXT NOT NULL REFERENCES trips(trip_id) ON DELETE CASCADE,
    country              TEXT NOT NULL,
    start_date           TEXT,
    end_date             TEXT,
    position             INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS expenses (
    expense_id           TEXT PRIMARY KEY,
    trip_id              TEXT REFERENCES trips(trip_id) ON DELETE CASCADE,
    location_id          TEXT,
    amount               REAL NOT NULL,
    currency             TEXT,
    category             TEXT,
    spent_on             TEXT,
    note                 TEXT
);

CREATE TABLE IF NOT EXISTS trip_budgets (
    trip_id              TEXT PRIMARY KEY REFERENCES trips(trip_id) ON DELETE CASCADE,
    currency             TEXT,
    style                TEXT,
    auto_suggested       INTEGER NOT NULL DEFAULT 0,
    total                REAL,
    per_day              REAL,
    accommodation        REAL,
    food                 REAL,
    transport            REAL,
    activities           REAL,
    misc                 REAL,
    warn_pct             INTEGER,
    stop_pct             INTEGER
);

CREATE TABLE IF NOT EXISTS import_tracker (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_legs_trip ON legs(trip_id);
CREATE INDEX IF NOT EXISTS idx_expenses_trip ON expenses(trip_id);
CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(spent_on);
`

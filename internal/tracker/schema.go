package tracker

// createSchemaSQL is the DDL for the SchemaVersions ledger table.
const createSchemaSQL = `CREATE TABLE IF NOT EXISTS SchemaVersions(
    SchemaVersionID INTEGER PRIMARY KEY,
    ScriptName TEXT NOT NULL,
    Applied DATETIME NOT NULL
)`

// appliedLayout matches SQLite's datetime('now') text format.
const appliedLayout = "2006-01-02 15:04:05"

package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;
PRAGMA mmap_size = 30000000000;

-- Runs: one row per merge invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    job_id TEXT,
    input_dir TEXT NOT NULL,
    output_dir TEXT NOT NULL,
    manifest_source TEXT,         -- edi, reference-document, mapping-file
    manifest_entries INTEGER DEFAULT 0,
    processed_files INTEGER DEFAULT 0,
    merged_clients INTEGER DEFAULT 0,
    failed_clients INTEGER DEFAULT 0,
    unmatched_documents INTEGER DEFAULT 0,
    files_optimized INTEGER DEFAULT 0,
    total_savings_mb REAL DEFAULT 0,
    status TEXT NOT NULL          -- success, partial, failed
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_job ON runs(job_id);

-- Run clients: per-client outcome within a run
CREATE TABLE IF NOT EXISTS run_clients (
    client_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    reference TEXT NOT NULL,
    client_name TEXT,
    output_file TEXT,
    arrival_pages INTEGER DEFAULT 0,
    bill_pages INTEGER DEFAULT 0,
    customer_pages INTEGER DEFAULT 0,
    original_size_bytes INTEGER DEFAULT 0,
    final_size_bytes INTEGER DEFAULT 0,
    status TEXT NOT NULL,         -- merged, failed, no_documents
    error_message TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, reference)
);

CREATE INDEX IF NOT EXISTS idx_run_clients_run ON run_clients(run_id);
CREATE INDEX IF NOT EXISTS idx_run_clients_reference ON run_clients(reference);

-- Run alerts: flagged keyword hits found in merged output
CREATE TABLE IF NOT EXISTS run_alerts (
    alert_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    reference TEXT NOT NULL,
    keyword TEXT NOT NULL,
    page_number INTEGER NOT NULL,
    context TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_alerts_run ON run_alerts(run_id);
CREATE INDEX IF NOT EXISTS idx_run_alerts_keyword ON run_alerts(keyword);
`

package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Run statuses recorded in the runs table
const (
	RunStatusSuccess = "success"
	RunStatusPartial = "partial"
	RunStatusFailed  = "failed"
)

// Client statuses recorded in the run_clients table
const (
	ClientStatusMerged      = "merged"
	ClientStatusFailed      = "failed"
	ClientStatusNoDocuments = "no_documents"
)

// Run represents one merge invocation
type Run struct {
	RunID              int64
	CreatedAt          time.Time
	JobID              string
	InputDir           string
	OutputDir          string
	ManifestSource     string
	ManifestEntries    int
	ProcessedFiles     int
	MergedClients      int
	FailedClients      int
	UnmatchedDocuments int
	FilesOptimized     int
	TotalSavingsMB     float64
	Status             string
}

// RunClient represents a per-client outcome within a run
type RunClient struct {
	ClientID          int64
	RunID             int64
	Reference         string
	ClientName        string
	OutputFile        string
	ArrivalPages      int
	BillPages         int
	CustomerPages     int
	OriginalSizeBytes int64
	FinalSizeBytes    int64
	Status            string
	ErrorMessage      string
}

// RunAlert represents a flagged keyword hit in a merged output file
type RunAlert struct {
	AlertID    int64
	RunID      int64
	Reference  string
	Keyword    string
	PageNumber int
	Context    string
}

// InsertRun records a completed run, returning the run_id.
func (db *DB) InsertRun(run Run) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (job_id, input_dir, output_dir, manifest_source, manifest_entries,
		                  processed_files, merged_clients, failed_clients, unmatched_documents,
		                  files_optimized, total_savings_mb, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, NewNullString(run.JobID), run.InputDir, run.OutputDir, NewNullString(run.ManifestSource),
		run.ManifestEntries, run.ProcessedFiles, run.MergedClients, run.FailedClients,
		run.UnmatchedDocuments, run.FilesOptimized, run.TotalSavingsMB, run.Status)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	return runID, nil
}

// InsertRunClient records a client outcome for a run.
func (db *DB) InsertRunClient(runID int64, client RunClient) error {
	_, err := db.Exec(`
		INSERT INTO run_clients (run_id, reference, client_name, output_file, arrival_pages,
		                         bill_pages, customer_pages, original_size_bytes, final_size_bytes,
		                         status, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, client.Reference, NewNullString(client.ClientName), NewNullString(client.OutputFile),
		client.ArrivalPages, client.BillPages, client.CustomerPages, client.OriginalSizeBytes,
		client.FinalSizeBytes, client.Status, NewNullString(client.ErrorMessage))
	if err != nil {
		return fmt.Errorf("failed to insert run client: %w", err)
	}
	return nil
}

// InsertRunAlert records a flagged keyword hit for a run.
func (db *DB) InsertRunAlert(runID int64, alert RunAlert) error {
	_, err := db.Exec(`
		INSERT INTO run_alerts (run_id, reference, keyword, page_number, context)
		VALUES (?, ?, ?, ?, ?)
	`, runID, alert.Reference, alert.Keyword, alert.PageNumber, NewNullString(alert.Context))
	if err != nil {
		return fmt.Errorf("failed to insert run alert: %w", err)
	}
	return nil
}

// ListRuns retrieves runs ordered by most recent first
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, created_at, job_id, input_dir, output_dir, manifest_source,
		       manifest_entries, processed_files, merged_clients, failed_clients,
		       unmatched_documents, files_optimized, total_savings_mb, status
		FROM runs
		ORDER BY created_at DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var jobID, manifestSource sql.NullString
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &jobID, &r.InputDir, &r.OutputDir,
			&manifestSource, &r.ManifestEntries, &r.ProcessedFiles, &r.MergedClients,
			&r.FailedClients, &r.UnmatchedDocuments, &r.FilesOptimized, &r.TotalSavingsMB,
			&r.Status); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if jobID.Valid {
			r.JobID = jobID.String
		}
		if manifestSource.Valid {
			r.ManifestSource = manifestSource.String
		}
		runs = append(runs, r)
	}

	return runs, nil
}

// GetRunByID retrieves a run by its ID
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	var r Run
	var jobID, manifestSource sql.NullString
	err := db.QueryRow(`
		SELECT run_id, created_at, job_id, input_dir, output_dir, manifest_source,
		       manifest_entries, processed_files, merged_clients, failed_clients,
		       unmatched_documents, files_optimized, total_savings_mb, status
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(&r.RunID, &r.CreatedAt, &jobID, &r.InputDir, &r.OutputDir,
		&manifestSource, &r.ManifestEntries, &r.ProcessedFiles, &r.MergedClients,
		&r.FailedClients, &r.UnmatchedDocuments, &r.FilesOptimized, &r.TotalSavingsMB,
		&r.Status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if jobID.Valid {
		r.JobID = jobID.String
	}
	if manifestSource.Valid {
		r.ManifestSource = manifestSource.String
	}
	return &r, nil
}

// GetRunClients retrieves all client outcomes for a run
func (db *DB) GetRunClients(runID int64) ([]RunClient, error) {
	rows, err := db.Query(`
		SELECT client_id, run_id, reference, client_name, output_file, arrival_pages,
		       bill_pages, customer_pages, original_size_bytes, final_size_bytes,
		       status, error_message
		FROM run_clients
		WHERE run_id = ?
		ORDER BY client_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run clients: %w", err)
	}
	defer rows.Close()

	var clients []RunClient
	for rows.Next() {
		var c RunClient
		var clientName, outputFile, errorMessage sql.NullString
		if err := rows.Scan(&c.ClientID, &c.RunID, &c.Reference, &clientName, &outputFile,
			&c.ArrivalPages, &c.BillPages, &c.CustomerPages, &c.OriginalSizeBytes,
			&c.FinalSizeBytes, &c.Status, &errorMessage); err != nil {
			return nil, fmt.Errorf("failed to scan run client: %w", err)
		}
		if clientName.Valid {
			c.ClientName = clientName.String
		}
		if outputFile.Valid {
			c.OutputFile = outputFile.String
		}
		if errorMessage.Valid {
			c.ErrorMessage = errorMessage.String
		}
		clients = append(clients, c)
	}

	return clients, nil
}

// GetRunAlerts retrieves all flagged keyword hits for a run
func (db *DB) GetRunAlerts(runID int64) ([]RunAlert, error) {
	rows, err := db.Query(`
		SELECT alert_id, run_id, reference, keyword, page_number, context
		FROM run_alerts
		WHERE run_id = ?
		ORDER BY alert_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run alerts: %w", err)
	}
	defer rows.Close()

	var alerts []RunAlert
	for rows.Next() {
		var a RunAlert
		var context sql.NullString
		if err := rows.Scan(&a.AlertID, &a.RunID, &a.Reference, &a.Keyword,
			&a.PageNumber, &context); err != nil {
			return nil, fmt.Errorf("failed to scan run alert: %w", err)
		}
		if context.Valid {
			a.Context = context.String
		}
		alerts = append(alerts, a)
	}

	return alerts, nil
}

// QueryRuns filters runs based on criteria
func (db *DB) QueryRuns(todayOnly bool, failedOnly bool, clientPattern string) ([]Run, error) {
	query := `
		SELECT DISTINCT r.run_id, r.created_at, r.job_id, r.input_dir, r.output_dir,
		       r.manifest_source, r.manifest_entries, r.processed_files, r.merged_clients,
		       r.failed_clients, r.unmatched_documents, r.files_optimized, r.total_savings_mb,
		       r.status
		FROM runs r
	`

	var conditions []string
	var args []interface{}

	if todayOnly {
		conditions = append(conditions, "DATE(r.created_at) = DATE('now')")
	}

	if failedOnly {
		conditions = append(conditions, "r.failed_clients > 0")
	}

	if clientPattern != "" {
		query += `
		JOIN run_clients rc ON r.run_id = rc.run_id
		`
		conditions = append(conditions, "(rc.client_name LIKE ? OR rc.reference LIKE ?)")
		args = append(args, "%"+clientPattern+"%", "%"+clientPattern+"%")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY r.created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var jobID, manifestSource sql.NullString
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &jobID, &r.InputDir, &r.OutputDir,
			&manifestSource, &r.ManifestEntries, &r.ProcessedFiles, &r.MergedClients,
			&r.FailedClients, &r.UnmatchedDocuments, &r.FilesOptimized, &r.TotalSavingsMB,
			&r.Status); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if jobID.Valid {
			r.JobID = jobID.String
		}
		if manifestSource.Valid {
			r.ManifestSource = manifestSource.String
		}
		runs = append(runs, r)
	}

	return runs, nil
}

// NewNullString creates a sql.NullString from a string value.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

package help

const WorkflowYAML = `# sdm Quick Start

manifest_sources:
  edi: "Tabular EDI export (.xlsx/.csv/.html), highest priority"
  reference-document: "Arrival notice scanned for reference codes and client names"
  mapping-file: "Saved client_manifest.csv next to the input folder"

commands:
  basic_merge: |
    sdm merge --input-folder ./inbox --output-folder ./dossiers

  merge_with_edi: |
    sdm merge --input-folder ./inbox --output-folder ./dossiers --edi-file ./manifest.xlsx

  merge_without_optimization: |
    sdm merge --input-folder ./inbox --output-folder ./dossiers --disable-optimization

  machine_output: |
    sdm merge --input-folder ./inbox --output-folder ./dossiers --json-output --quiet

  build_manifest: |
    sdm manifest --input-folder ./inbox --edi-file ./manifest.xlsx

  rescan_outputs: |
    sdm audit --output-folder ./dossiers

  list_runs: |
    sdm db runs

  run_details: |
    sdm db run 5

  query_runs: |
    sdm db query --today
    sdm db query --failed
    sdm db query --client="Jane Doe"

key_files:
  - "client_manifest.csv (saved reference-to-name mapping, reused on later runs)"
  - "<output>/compression_report.txt (per-file optimization outcomes)"
  - "<output>/tax_alert_report.txt (flagged keywords with page context)"
  - "<output>/run_summary.yaml (machine-readable run summary)"

run_ledger:
  - "Runs tracked in SQLite database next to the executable"
  - "Auto-incrementing run IDs (1, 2, 3...)"
  - "Per-client outcomes and keyword alerts recorded per run"
  - "Use 'sdm db runs' to list all runs"
  - "Use 'sdm db run <id>' for per-client details"

db_commands:
  runs: "List all runs with stats"
  run_id: "Show detailed info for one run"
  summary: "Print a run's summary YAML or report files (--file=summary|compression|alerts)"
  query: "Filter runs (--today, --failed, --client=pattern)"
  init: "Initialize database schema"

merge_invariants:
  - "Pages ordered arrival notice, bill of lading, then customer documents"
  - "Duplicate arrival notices skipped, first discovered wins"
  - "Output names: CleanedClientName_Ref_With_Underscores.pdf"
  - "Keyword audit starts at page 13 of each merged file"
  - "Optimization never grows a file, originals replaced atomically"

query_examples:
  list_all_runs: 'sdm db runs'
  show_run_5: 'sdm db run 5'
  query_today: 'sdm db query --today'
  query_failed: 'sdm db query --failed'
  query_client: 'sdm db query --client=527'

error_behavior:
  - "Missing input folder or empty manifest: fail fast before merging"
  - "Unreadable source files: logged and skipped, run continues"
  - "Per-client merge failures recorded, remaining clients still merged"
  - "Exit codes: 0=run completed (even with per-client failures), 2=fatal setup error"
`

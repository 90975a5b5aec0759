package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newExportCmd(app *cli) *cobra.Command {
	var out, bucket, key string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download a full-state backup",
		Long:  "Download every stored key as one JSON document. Writes a local file by default, or uploads to S3 when --s3-bucket is set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := app.api().do(cmd.Context(), http.MethodGet, "/api/export", nil)
			if err != nil {
				return err
			}

			if bucket != "" {
				if key == "" {
					key = fmt.Sprintf("backups/nutriai-export-%s.json", time.Now().UTC().Format("20060102-150405"))
				}
				store, err := app.newStore(cmd)
				if err != nil {
					return err
				}
				if err := store.Put(cmd.Context(), bucket, key, raw); err != nil {
					return err
				}
				success(cmd, "Uploaded backup to s3://%s/%s (%d bytes)", bucket, key, len(raw))
				if !cmd.Flags().Changed("out") {
					return nil
				}
			}

			if out == "-" {
				_, err := cmd.OutOrStdout().Write(append(raw, '\n'))
				return err
			}
			if out == "" {
				out = fmt.Sprintf("nutriai-export-%s.json", time.Now().Format("2006-01-02"))
			}
			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			success(cmd, "Wrote backup: %s (%d bytes)", out, len(raw))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", `Output file ("-" for stdout; default nutriai-export-DATE.json)`)
	cmd.Flags().StringVar(&bucket, "s3-bucket", "", "Upload the backup to this S3 bucket")
	cmd.Flags().StringVar(&key, "s3-key", "", "S3 object key (default backups/nutriai-export-TIMESTAMP.json)")
	return cmd
}

func newImportCmd(app *cli) *cobra.Command {
	var file, bucket, key string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Restore a backup",
		Long:  "Send a backup document to the server. Only the sections present in the document replace stored data.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			switch {
			case bucket != "":
				if key == "" {
					return fmt.Errorf("--s3-key is required with --s3-bucket")
				}
				store, err := app.newStore(cmd)
				if err != nil {
					return err
				}
				if raw, err = store.Get(cmd.Context(), bucket, key); err != nil {
					return err
				}
			case file != "":
				var err error
				if raw, err = os.ReadFile(file); err != nil {
					return fmt.Errorf("read %s: %w", file, err)
				}
			default:
				return fmt.Errorf("--file or --s3-bucket/--s3-key is required")
			}
			if !json.Valid(raw) {
				return fmt.Errorf("backup is not valid JSON")
			}

			resp, err := app.api().do(cmd.Context(), http.MethodPost, "/api/import", raw)
			if err != nil {
				return err
			}
			var result struct {
				Imported []string `json:"imported"`
			}
			if err := json.Unmarshal(resp, &result); err != nil {
				return fmt.Errorf("decode import response: %w", err)
			}
			if len(result.Imported) == 0 {
				notice(cmd, "Nothing imported: the document had no known sections")
				return nil
			}
			success(cmd, "Imported %d section(s): %s", len(result.Imported), strings.Join(result.Imported, ", "))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Backup JSON file")
	cmd.Flags().StringVar(&bucket, "s3-bucket", "", "Read the backup from this S3 bucket")
	cmd.Flags().StringVar(&key, "s3-key", "", "S3 object key of the backup")
	return cmd
}

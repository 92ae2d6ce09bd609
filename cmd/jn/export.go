package main

import (
	"fmt"

	"github.com/jn-tool/jn/pkg/crypto"
	"github.com/jn-tool/jn/pkg/export"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exportTarget     string
	exportDir        string
	exportWorkspaces []string
	exportDecrypt    bool
	exportDryRun     bool
	exportOverwrite  bool
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportTarget, "target", "t", "zip", "Export target (zip or aws-s3)")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Output directory for the zip target")
	exportCmd.Flags().StringSliceVarP(&exportWorkspaces, "workspace", "w", nil, "Workspaces to export (defaults to all)")
	exportCmd.Flags().BoolVarP(&exportDecrypt, "decrypt", "d", false, "Export encrypted entries as plaintext (prompts for the passphrase)")
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "Report what would be uploaded without uploading (aws-s3 only)")
	exportCmd.Flags().BoolVar(&exportOverwrite, "overwrite", false, "Replace an existing archive (zip only)")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export journal entries to a zip archive or an S3 bucket",
	Long: `Export journal entries to an external target.

The zip target writes a date-stamped archive of the selected
workspaces. The aws-s3 target uploads entries to a bucket and keeps a
manifest of content digests so unchanged entries are skipped on the
next export. Credentials and region come from the standard AWS
environment.

Encrypted entries are exported as plaintext when --decrypt is given;
without it they are skipped and reported.

Examples:
  # Archive everything into ./journals.<date>.zip
  jn export

  # Upload the work workspace to the configured bucket
  jn export -t aws-s3 -w work -d`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var key []byte
		if exportDecrypt {
			k, err := promptKey()
			if err != nil {
				return err
			}
			defer crypto.SecureWipe(k)
			key = k
		}

		var res export.Result
		switch exportTarget {
		case "zip":
			dir := exportDir
			if dir == "" && cfg.Export.Zip != nil {
				dir = cfg.Export.Zip.Dir
			}
			var path string
			var err error
			res, path, err = export.Zip(store, export.ZipOptions{
				Dir:        dir,
				Workspaces: exportWorkspaces,
				Key:        key,
				Overwrite:  exportOverwrite,
			})
			if err != nil {
				return err
			}
			fmt.Println(color.GreenString("✓") + " Wrote " + color.CyanString(path))

		case "aws-s3":
			s3cfg := cfg.Export.AwsS3
			if s3cfg == nil || s3cfg.Bucket == "" {
				return fmt.Errorf("aws-s3 export requires export.aws-s3.bucket in the configuration")
			}
			workspaces := exportWorkspaces
			if workspaces == nil {
				workspaces = s3cfg.Workspaces
			}
			client, err := export.NewS3Client(cmd.Context())
			if err != nil {
				return err
			}
			res, err = export.NewS3Exporter(client).Export(cmd.Context(), store, export.S3Options{
				Bucket:     s3cfg.Bucket,
				Workspaces: workspaces,
				Key:        key,
				DryRun:     exportDryRun,
			})
			if err != nil {
				return err
			}
			if exportDryRun {
				fmt.Println(color.YellowString("dry run") + ", nothing uploaded")
			}

		default:
			return fmt.Errorf("unknown export target %q (expected zip or aws-s3)", exportTarget)
		}

		for _, name := range res.Exported {
			fmt.Println("  " + color.GreenString("exported") + " " + name)
		}
		for _, name := range res.Skipped {
			fmt.Println("  " + color.BlueString("skipped") + "  " + name)
		}
		fmt.Printf("%d exported, %d skipped\n", len(res.Exported), len(res.Skipped))
		return nil
	},
}

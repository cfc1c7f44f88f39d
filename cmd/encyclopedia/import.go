package main

import (
	"fmt"

	"encyclopedia/pkg/bear"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newImportCmd(opts *options) *cobra.Command {
	var (
		dbPath    string
		tag       string
		key       string
		overwrite bool
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import notes from a Bear database as wiki entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				return errors.New("--bear-db is required")
			}
			if key != "" && tag != "" {
				return errors.New("--key and --tag cannot be combined")
			}
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			var bearStorage bear.Storage
			bearStorage, err = bear.Connect(dbPath)
			if err != nil {
				return errors.Wrap(err, "connect to bear db")
			}
			defer bearStorage.Close()

			notes, err := selectNotes(bearStorage, key, tag)
			if err != nil {
				return err
			}
			core, err := newCore(cfg)
			if err != nil {
				return err
			}
			report, err := core.Import(notes, overwrite)
			if err != nil {
				return errors.Wrap(err, "import notes")
			}
			for _, title := range report.Invalid {
				logger.Warn("skipped note with unusable title", zap.String("title", title))
			}
			logger.Info("import finished",
				zap.Int("imported", len(report.Imported)),
				zap.Int("skipped", len(report.Skipped)),
				zap.Int("invalid", len(report.Invalid)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d existing, %d invalid\n",
				len(report.Imported), len(report.Skipped), len(report.Invalid))
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "bear-db", "", "path to Bear's database.sqlite")
	cmd.Flags().StringVar(&tag, "tag", "", "only import notes with this tag")
	cmd.Flags().StringVar(&key, "key", "", "import the single note with this Bear unique identifier")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace entries that already exist")
	return cmd
}

func selectNotes(s bear.Storage, key, tag string) ([]bear.Note, error) {
	if key == "" {
		return s.GetAllNotes(tag)
	}
	note, err := s.GetNoteByKey(key)
	if err != nil {
		return nil, err
	}
	return []bear.Note{*note}, nil
}

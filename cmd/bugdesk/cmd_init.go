package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bugdesk/adapters/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty workbook with the required tabs",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	if cfg.Workbook == "" {
		return fmt.Errorf("no workbook path; set workbook: in the config file or pass --workbook")
	}
	if _, err := os.Stat(cfg.Workbook); err == nil {
		return fmt.Errorf("workbook %q already exists", cfg.Workbook)
	}

	ts, err := store.NewXLSX(cfg.Workbook)
	if err != nil {
		return err
	}
	defer ts.Close()
	if err := ts.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", cfg.Workbook)
	return nil
}

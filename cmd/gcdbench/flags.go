package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// GetFlag gets an expected boolean flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	exitOnError(err)

	return r
}

// GetUint gets an expected unsigned flag, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	exitOnError(err)

	return r
}

// GetUint64 gets an expected uint64 flag, or exits if an error arises.
func GetUint64(cmd *cobra.Command, flag string) uint64 {
	r, err := cmd.Flags().GetUint64(flag)
	exitOnError(err)

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	exitOnError(err)

	return r
}

// GetDuration gets an expected duration flag, or exits if an error arises.
func GetDuration(cmd *cobra.Command, flag string) time.Duration {
	r, err := cmd.Flags().GetDuration(flag)
	exitOnError(err)

	return r
}

func exitOnError(err error) {
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}

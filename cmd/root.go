/*
Package cmd implements the command-line interface of the hybrid travel
assistant: the web service, a terminal chat, dataset ingestion and setup
checks.
*/
package cmd

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/hybrid-travel/pkg/config"
	"github.com/theapemachine/hybrid-travel/pkg/logging"
)

/*
Embed a mini filesystem into the binary to hold the default config file.
This will be written to the home directory of the user running the service,
which allows a developer to easily override the config file.
*/
//go:embed cfg/*
var embedded embed.FS

var (
	projectName = "hybrid-travel"
	cfgFile     string
	logLevel    string

	rootCmd = &cobra.Command{
		Use:   projectName,
		Short: "A Vietnam travel assistant backed by vector search and a knowledge graph",
		Long:  longRoot,
	}
)

/*
Execute is the main entry point for the CLI.
*/
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yml",
		"config file (default is $HOME/."+projectName+"/config.yml)",
	)

	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		"",
		"override log.level from the config file",
	)
}

/*
initConfig writes the default config file to the user's home directory if it
doesn't exist, reads it, and sets up logging.
*/
func initConfig() {
	var err error

	if err = writeConfig(); err != nil {
		log.Fatal(err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	home, _ := os.UserHomeDir()
	viper.AddConfigPath(home + "/." + projectName)
	viper.AddConfigPath(".")

	config.SetDefaults(viper.GetViper())

	if err = viper.ReadInConfig(); err != nil {
		log.Fatal(err)
		return
	}

	if logLevel != "" {
		viper.Set("log.level", logLevel)
	}

	if err = logging.Init(viper.GetString("log.level"), viper.GetString("log.file")); err != nil {
		log.Fatal(err)
	}
}

/*
writeConfig writes the default config file to the user's home directory.
*/
func writeConfig() (err error) {
	var (
		home, _ = os.UserHomeDir()
		fh      fs.File
		buf     bytes.Buffer
	)

	configDir := home + "/." + projectName
	if !CheckFileExists(configDir) {
		if err = os.MkdirAll(configDir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	fullPath := configDir + "/" + cfgFile

	if CheckFileExists(fullPath) {
		return nil
	}

	if fh, err = embedded.Open("cfg/" + cfgFile); err != nil {
		return fmt.Errorf("failed to open embedded config file: %w", err)
	}
	defer fh.Close()

	if _, err = io.Copy(&buf, fh); err != nil {
		return fmt.Errorf("failed to read embedded config file: %w", err)
	}

	if err = os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	log.Info("wrote config file", "path", fullPath)

	return nil
}

func CheckFileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !errors.Is(err, os.ErrNotExist)
}

var longRoot = `
hybrid-travel answers travel questions about Vietnam. Each question is
embedded and matched against a Qdrant collection of places, enriched with
relationships from a Neo4j knowledge graph, and answered by a chat model.
When the chat model is unavailable a template answer is built from the
matches instead.
`

package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/duel/internal/duel/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := duel(); err != nil {
		logrus.Fatal(err)
	}
}

func duel() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}

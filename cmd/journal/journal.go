package journal

import (
	"github.com/markusressel/bed2go/internal/configuration"
	"github.com/markusressel/bed2go/internal/persistence"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "journal",
	Short:            "Thermal safety journal related commands",
	Long:             ``,
	TraverseChildren: true,
}

func openJournal() persistence.Persistence {
	return persistence.NewPersistence(configuration.CurrentConfig.DbPath)
}

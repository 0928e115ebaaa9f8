package cli

import (
	"fmt"

	"github.com/diillson/aws-cost-chart/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
   ___  _    _ ___     ___         _      ___ _            _   
  / _ \| |  | / __|   / __|___ ___| |_   / __| |_  __ _ _ | |_ 
 | (_) | |/\| \__ \  | (__/ _ (_-<  _| | (__| ' \/ _' | '_|  _|
  \__,_|__/\__|___/   \___\___/__/\__|   \___|_||_\__,_|_|  \__|
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("AWS Cost Chart CLI (v%s)", formattedVersion)))
	if versionStr != "" && versionStr != version.Version {
		fmt.Println(blue(fmt.Sprintf("build %s", versionStr)))
	}
}

package cli

import (
	"fmt"

	"github.com/diillson/aws-audit-reports/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
     ___        ______        _             _ _ _
    / \ \      / / ___|      / \  _   _  __| (_) |_
   / _ \ \ /\ / /\___ \     / _ \| | | |/ _' | | __|
  / ___ \ V  V /  ___) |   / ___ \ |_| | (_| | | |_
 /_/   \_\_/\_/  |____/   /_/   \_\__,_|\__,_|_|\__|
`
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))
	fmt.Println(blue(fmt.Sprintf("AWS Audit Reports CLI (v%s)", version.FormatVersion())))
}

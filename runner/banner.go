package runner

import (
	"github.com/projectdiscovery/gologger"
)

const banner = `
    __               __             __  ___     __
   / /_  ____  _____/ /_______  ___/ / / (_)___/ /__
  / __ \/ __ \/ ___/ __/ ___/ / / / / / / / __  / _ \
 / / / / /_/ (__  ) /_/ /__/ /_/ / / / / / /_/ /  __/
/_/ /_/\____/____/\__/\___/\____/_/_/_/_/\__,_/\___/
`

// version is the current version of hostcollide
const version = `v0.1.0`

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\thost / ip collision prober\n\n")
}

package runner

import (
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/hostcollide/common/iputil"
	"github.com/projectdiscovery/mapcidr"
)

// Task is a single domain to present against a single ip
type Task struct {
	Domain string
	IP     string
}

// GenerateTasks returns every (domain, ip) pair, ips varying fastest
func GenerateTasks(domains, ips []string) []Task {
	tasks := make([]Task, 0, len(domains)*len(ips))
	for _, domain := range domains {
		for _, ip := range ips {
			tasks = append(tasks, Task{Domain: domain, IP: ip})
		}
	}
	return tasks
}

// expandIPs replaces cidr entries of the ip list with their addresses.
// Entries that are neither an ip, an ip:port nor a cidr are skipped, a
// hostname would have to be resolved.
func expandIPs(entries []string) []string {
	ips := make([]string, 0, len(entries))
	for _, entry := range entries {
		switch {
		case iputil.IsCidr(entry):
			cidrIps, err := mapcidr.IPAddresses(entry)
			if err != nil {
				gologger.Warning().Msgf("Could not expand '%s': %s\n", entry, err)
				continue
			}
			ips = append(ips, cidrIps...)
		case iputil.IsIP(entry), iputil.IsIPPort(entry):
			ips = append(ips, entry)
		default:
			gologger.Warning().Msgf("Skipping '%s': not an ip address\n", entry)
		}
	}
	return ips
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/common/log"
	"github.com/prometheus/common/version"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	toolName  = "modem_watchdog"
	namespace = "modem"
)

// rebootGrace is how long the watchdog waits after notifying before it
// issues the reboot, leaving a window to cancel the run. A variable so
// tests can shorten the wait.
var rebootGrace = 5 * time.Second

func main() {
	var (
		modemAddress           = kingpin.Flag("modem.address", "Address of the modem's management interface.").Default("192.168.100.1").OverrideDefaultFromEnvar("MODEM_ADDRESS").String()
		dryRun                 = kingpin.Flag("dry-run", "Report what would be done without issuing a reboot.").Short('n').Bool()
		dryRunNotify           = kingpin.Flag("dry-run-notify", "Dry run, but still send notifications.").Short('N').Bool()
		restoreDefaults        = kingpin.Flag("restore-factory-defaults", "Restore factory defaults when rebooting.").Short('r').Bool()
		uncorrectableThreshold = kingpin.Flag("threshold.uncorrectable", "Uncorrectable errors tolerated before a reboot is issued.").Short('c').Default("1000").Uint64()
		correctableThreshold   = kingpin.Flag("threshold.correctable", "Correctable errors tolerated before a reboot is issued.").Default("100000").Uint64()
		clientTimeout          = kingpin.Flag("client.timeout", "Timeout for HTTP requests to the modem.").Default("50s").Duration()
		parser                 = kingpin.Flag("client.parser", "Status page parser to use.").Default("pattern").Enum("pattern", "dom")
		textfilePath           = kingpin.Flag("metrics.textfile-path", "If set, write metrics in textfile collector format to this path.").String()
	)

	log.AddFlags(kingpin.CommandLine)
	kingpin.Version(version.Print(toolName))
	kingpin.HelpFlag.Short('h')
	kingpin.Parse()

	cfg := Config{
		ModemAddress:           *modemAddress,
		DryRun:                 *dryRun || *dryRunNotify || envSet("DRY_RUN"),
		NotifyOnDryRun:         *dryRunNotify,
		RestoreFactoryDefaults: *restoreDefaults || restoreFromEnv(),
		UncorrectableThreshold: *uncorrectableThreshold,
		CorrectableThreshold:   *correctableThreshold,
		Timeout:                *clientTimeout,
		Parser:                 *parser,
		TextfilePath:           *textfilePath,
	}

	if err := run(cfg, notifierFromEnv()); err != nil {
		log.Fatal(err)
	}
}

func run(cfg Config, notifier *Notifier) error {
	client, err := NewModemClient(cfg.ModemAddress, cfg.Timeout)
	if err != nil {
		return err
	}
	extractor, err := newRowExtractor(cfg.Parser)
	if err != nil {
		return err
	}

	body, err := client.StatusPage()
	if err != nil {
		return err
	}

	t := tally(extractor.Extract(body))
	fmt.Printf("found %d correctable errors\n", t.Correctable)
	fmt.Printf("found %d uncorrectable errors\n", t.Uncorrectable)

	triggered := t.Uncorrectable > cfg.UncorrectableThreshold ||
		t.Correctable > cfg.CorrectableThreshold

	if cfg.TextfilePath != "" {
		metrics := newWatchdogMetrics(client.Collectors()...)
		metrics.record(t, triggered)
		if err := metrics.writeTextfile(cfg.TextfilePath); err != nil {
			log.Errorln("writing metrics textfile:", err)
		}
	}

	if !triggered {
		return nil
	}

	if notifier != nil && (!cfg.DryRun || cfg.NotifyOnDryRun) {
		if err := notifier.Send(context.Background(), t, cfg); err != nil {
			log.Warnln(err)
		}
		fmt.Println("pausing for cancel....")
		time.Sleep(rebootGrace)
	}

	if cfg.DryRun {
		fmt.Println("would issue modem reboot")
		return nil
	}

	fmt.Println("issuing modem reboot")
	if err := client.Reboot(cfg.RestoreFactoryDefaults); err != nil {
		// The modem may drop the connection as part of rebooting;
		// a failed reboot request never fails the run.
		log.Warnln("reboot request:", err)
	}
	return nil
}

// Command lampctl drives two lamp outputs, a countdown timer, and wall-clock
// alarms with a buzzer, controlled over HTTP and reported to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/lampctl/internal/clock"
	"github.com/sweeney/lampctl/internal/control"
	"github.com/sweeney/lampctl/internal/gpio"
	"github.com/sweeney/lampctl/internal/mqtt"
	"github.com/sweeney/lampctl/internal/store"
	"github.com/sweeney/lampctl/internal/web"
)

func main() {
	httpAddr := flag.String("http", ":80", "HTTP control address")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", `MQTT broker address ("off" disables)`)
	dbPath := flag.String("db", "/var/lib/lampctl/lampctl.db", "SQLite database path for persisted alarms")
	tick := flag.Duration("tick", 10*time.Millisecond, "Scheduler tick interval")
	ring := flag.Duration("ring", 1800*time.Millisecond, "Buzzer ring duration")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	toneHz := flag.Int("tone-hz", gpio.DefaultToneHz, "Buzzer tone frequency (passive buzzer)")
	passive := flag.Bool("passive", true, "Buzzer is passive (tone driven) rather than active (level driven)")
	pinLamp1 := flag.Int("pin-lamp1", gpio.DefaultPinLamp1, "BCM pin number for lamp 1")
	pinLamp2 := flag.Int("pin-lamp2", gpio.DefaultPinLamp2, "BCM pin number for lamp 2")
	pinBuzzer := flag.Int("pin-buzzer", gpio.DefaultPinBuzzer, "BCM pin number for the buzzer (active buzzer)")
	ntpServer := flag.String("ntp", "pool.ntp.org", `NTP server for wall-clock time ("off" uses the system clock)`)
	gmtOffset := flag.Duration("gmt-offset", time.Hour, "Offset from UTC")
	dstOffset := flag.Duration("dst-offset", time.Hour, "Additional daylight saving offset")
	syncEvery := flag.Duration("sync-every", time.Hour, "NTP resync interval")

	flag.Parse()

	if err := run(*httpAddr, *broker, *dbPath, *tick, *ring, *heartbeat, *toneHz, *passive,
		*pinLamp1, *pinLamp2, *pinBuzzer, *ntpServer, *gmtOffset, *dstOffset, *syncEvery); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(httpAddr, broker, dbPath string, tick, ring, heartbeat time.Duration, toneHz int, passive bool,
	pinLamp1, pinLamp2, pinBuzzer int, ntpServer string, gmtOffset, dstOffset, syncEvery time.Duration) error {
	// Initialize GPIO
	outputs, err := gpio.NewReal(pinLamp1, pinLamp2, pinBuzzer, passive)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer outputs.Close()

	// Initialize alarm persistence
	st, err := store.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// Initialize wall clock
	var clockSrc clock.Source
	if ntpServer == "off" {
		clockSrc = clock.NewSystem(gmtOffset, dstOffset)
	} else {
		ntpClock := clock.NewNTP(ntpServer, gmtOffset, dstOffset, syncEvery)
		ntpClock.Run()
		defer ntpClock.Close()
		clockSrc = ntpClock
	}

	// Initialize MQTT
	var publisher mqtt.Publisher
	var realPub *mqtt.RealPublisher
	if broker != "off" {
		realPub = mqtt.NewRealPublisher(broker)
		defer realPub.Close()
		publisher = realPub
	}

	ctrl := control.New(control.Config{
		Outputs:   outputs,
		Buzzer:    gpio.NewBuzzer(outputs, passive, toneHz),
		Store:     st,
		Clock:     clockSrc,
		Publisher: publisher,
		Ring:      ring,
	})

	// Publish startup event with full status snapshot
	if publisher != nil {
		snap := ctrl.Snapshot()
		startupEvent := mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: control.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := publisher.PublishSystem(startupEvent); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	// Start HTTP control server
	srv := web.New(httpAddr, ctrl)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http server error: %v", err)
		}
	}()
	defer srv.Shutdown(context.Background())
	log.Printf("http control server listening on %s", httpAddr)

	log.Printf("started: tick=%v ring=%v broker=%s ntp=%s db=%s", tick, ring, broker, ntpServer, dbPath)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(ctrl, publisher, heartbeat, time.Now, ticker.C, sigCh)
}

func runLoop(ctrl *control.Controller, publisher mqtt.Publisher, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	lastBeat := now()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			if publisher != nil {
				snap := ctrl.Snapshot()
				event := mqtt.SystemEvent{
					Timestamp:  now(),
					Event:      "SHUTDOWN",
					Reason:     signalName,
					Retained:   true,
					RawPayload: control.FormatStatusEvent(snap, "SHUTDOWN", signalName),
				}
				if err := publisher.PublishSystem(event); err != nil {
					log.Printf("failed to publish shutdown event: %v", err)
				} else {
					log.Printf("published shutdown event")
				}
			}
			return nil

		case <-tick:
			ctrl.Tick()

			if publisher != nil && heartbeat > 0 {
				t := now()
				if t.Sub(lastBeat) >= heartbeat {
					lastBeat = t
					snap := ctrl.Snapshot()
					log.Printf("heartbeat: uptime=%v alarms=%d timer=%v", snap.Uptime(), len(snap.Alarms), snap.TimerRunning)
					hbEvent := mqtt.SystemEvent{
						Timestamp:  t,
						Event:      "HEARTBEAT",
						RawPayload: control.FormatStatusEvent(snap, "HEARTBEAT", ""),
					}
					if err := publisher.PublishSystem(hbEvent); err != nil {
						log.Printf("heartbeat publish error: %v", err)
					}
				}
			}
		}
	}
}

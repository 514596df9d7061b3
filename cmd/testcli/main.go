package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/jonathangjertsen/benchscpi/internal/config"
	"github.com/jonathangjertsen/benchscpi/internal/logging"
	"github.com/jonathangjertsen/benchscpi/scpi"
)

func main() {
	resource := flag.String("resource", "TCPIP::192.168.252.20::INSTR", "VISA-style resource name")
	write := flag.String("write", "", "command to send after *idn?")
	query := flag.String("query", "", "query to send after *idn?")
	timeout := flag.Duration("timeout", 2*time.Second, "per-command timeout")
	port := flag.Int("port", 0, "TCP port for INSTR resources (default 5025)")
	verbose := flag.Bool("v", false, "log every command")
	flag.Parse()

	logCfg := config.GetDefaultConfig().Log
	if *verbose {
		logCfg.Level = "debug"
	}
	log := logging.Setup(logCfg)

	rm := scpi.NewResourceManager(log)
	session, err := rm.Open(*resource, scpi.Config{Timeout: *timeout, Port: *port})
	if err != nil {
		log.Fatalf("Failed connecting to %s: %v", *resource, err)
	}
	defer session.Close()
	log.Infof("Connected")

	id, err := scpi.NewCommon(session).QueryID()
	if err != nil {
		log.Fatalf("*idn? failed: %v", err)
	}
	fmt.Println(id)

	if *write != "" {
		if err := session.Write(*write); err != nil {
			log.Fatalf("write %q failed: %v", *write, err)
		}
	}
	if *query != "" {
		reply, err := session.Query(*query)
		if err != nil {
			log.Fatalf("query %q failed: %v", *query, err)
		}
		fmt.Println(reply)
	}
}

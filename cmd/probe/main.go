package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/ecc1/cc1101scan"
	"github.com/ecc1/radio"
)

var (
	device    = flag.String("d", "", "spidev `device` (default depends on the board)")
	frequency = flag.Float64("f", 433.92e6, "new carrier `frequency` in Hz")
)

func main() {
	flag.Parse()
	conn, err := cc1101.OpenSPI(*device, 0)
	if err != nil {
		log.Fatal(err)
	}
	r, err := cc1101.Open(conn)
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()
	partnum, err := r.PartNum()
	if err != nil {
		log.Fatal(err)
	}
	version, err := r.Version()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("device: %s\n", conn.Device())
	fmt.Printf("partnum: 0x%02X  version: 0x%02X\n", partnum, version)
	state, err := r.State()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("state: %v\n", state)
	s, err := r.Summary()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("old: %v\n", s)
	if err = r.SetFrequency(*frequency); err != nil {
		log.Fatal(err)
	}
	if s, err = r.Summary(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("new: %v\n", s)
	fmt.Printf("carrier: %s MHz\n", radio.MegaHertz(uint32(s.Frequency)))
	mc, err := r.ReadModemConfig()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("modem: %+v\n", mc)
	pc, err := r.ReadPacketConfig()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("packet: %+v\n", pc)
	st := r.Statistics()
	fmt.Printf("bus: %d writes, %d reads\n", st.Packets.Sent, st.Packets.Received)
}

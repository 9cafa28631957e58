package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Saran-k-ece/Forensync/config"
	"github.com/Saran-k-ece/Forensync/db"
	"github.com/Saran-k-ece/Forensync/router"
	"github.com/Saran-k-ece/Forensync/store"
)

func main() {
	config.Load()

	conn, err := db.Connect()
	if err != nil {
		log.Fatalf("connect db failed: %v", err)
	}

	if config.C.SeedDemo {
		if err := db.SeedDemoEvidence(conn); err != nil {
			log.Fatalf("seed demo evidence failed: %v", err)
		}
	}

	if err := os.MkdirAll(config.C.UploadDir, 0o755); err != nil {
		log.Fatalf("create upload dir failed: %v", err)
	}

	r := router.Setup(config.C, store.New(conn))
	addr := fmt.Sprintf(":%s", config.C.AppPort)
	log.Printf("listening on %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

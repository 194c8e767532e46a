package main

import "github.com/redpanda-data/topology-builder/topology"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	topology.Execute(version)
}

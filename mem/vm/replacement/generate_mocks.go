package replacement

//go:generate mockgen -destination "mock_clock.go" -package $GOPACKAGE -write_package_comment=false github.com/sarchlab/vmsim/mem/vm/replacement Clock

package mmu

//go:generate mockgen -destination "mock_hooking.go" -package $GOPACKAGE -write_package_comment=false github.com/sarchlab/vmsim/sim/hooking Hook
//go:generate mockgen -destination "mock_replacement.go" -package $GOPACKAGE -write_package_comment=false github.com/sarchlab/vmsim/mem/vm/replacement Policy
//go:generate mockgen -destination "mock_datarecording.go" -package $GOPACKAGE -write_package_comment=false github.com/sarchlab/vmsim/datarecording DataRecorder

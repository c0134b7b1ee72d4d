//go:generate mockgen -destination=mock_pagetable.go -package=pagetable -write_package_comment=false github.com/sarchlab/vmsim/mem/vm/pagetable FrameOwnership

package pagetable

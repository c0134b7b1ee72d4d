//go:generate mockgen -destination=mock_framepool.go -package=framepool -write_package_comment=false github.com/sarchlab/vmsim/mem/vm/framepool PageSink

package framepool

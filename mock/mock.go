// Package mock is used to generate mock files for testing.
package mock

//go:generate mockgen -source ../idp/idp_iface.go -destination mock_idp/mock_idp_iface.go
//go:generate mockgen -source ../idp/loader/loader_iface.go -destination mock_loader/mock_loader_iface.go
//go:generate mockgen -source ../flowstore/flowstore_iface.go -destination mock_flowstore/mock_flowstore_iface.go

//go:generate mockgen -source=../order_store.go     -destination=./mock_order_store.go     -package=mocks
//go:generate mockgen -source=../order_service.go   -destination=./mock_order_service.go   -package=mocks
//go:generate mockgen -source=../catalog.go         -destination=./mock_catalog.go         -package=mocks
//go:generate mockgen -source=../event_publisher.go -destination=./mock_event_publisher.go -package=mocks

package mocks

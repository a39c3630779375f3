// Package domain defines the mock service model produced by importing a
// REST API description: services, operations with their dispatch
// configuration, and the request/response pairs (exchanges) that a runtime
// mock router serves to live traffic.
//
// A [Service] owns its [Operation] values. Exchanges are produced on demand
// per operation and are not retained: callers extract them, persist or serve
// them, and discard them.
package domain

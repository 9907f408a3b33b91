// Package kafka feeds HTrace spans from a Kafka topic into the receiver.
//
// Hosts that cannot call the receiver in-process publish their completed
// spans as HTrace JSON, one span or an array of spans per message. The feed
// fetches each message, decodes it, hands every span to
// receiver.SpanReceiver synchronously and then commits the message:
//
//	fetch -> decode -> ReceiveSpanContext (per span) -> commit
//
// Messages that cannot be decoded are logged, reported to the observer with
// the decode error and committed, so one bad producer cannot stall the
// partition. Nothing is buffered beyond kafka-go's own fetch.
//
// Authentication, authorization and unknown-topic errors stop the feed;
// other fetch errors are logged and retried after Config.FetchBackoff.
//
// TLS (optionally with a client certificate) and SASL PLAIN, SCRAM-SHA-256
// and SCRAM-SHA-512 are supported through TLSConfig and SASLConfig.
package kafka

// Package schema_registry lets the kafka feed consume spans published through
// a Confluent Schema Registry.
//
// Producers using the registry's JSON Schema serializers prefix every message
// with a five byte header: a zero magic byte and the big-endian schema id.
// SpanDecoder strips that header, resolves the id with a cached registry
// lookup, and decodes the rest as HTrace JSON:
//
//	client, err := schema_registry.NewClient(schema_registry.Config{URL: "http://registry:8081"})
//	if err != nil {
//	    return err
//	}
//	feed, err := kafka.NewSpanFeed(kafkaCfg, rcv, log,
//	    kafka.WithDecoder(schema_registry.NewSpanDecoder(client)))
//
// Producers register the span schema once with RegisterSpanSchema and frame
// their batches with EncodeSpans.
package schema_registry

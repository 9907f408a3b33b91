// Package htrace models spans produced by the HTrace instrumentation embedded
// in HBase and HDFS, and reads and writes their JSON form.
//
// HTrace spans are loosely typed: identifiers are 64-bit integers, times are
// milliseconds since the epoch, every annotation value is a string, and a span
// may name several parents. The receiver package converts them into the
// OpenTelemetry model.
//
// The JSON form uses the short keys HTrace itself emits:
//
//	{
//	  "i": "0000000000000064",      // trace id, hex
//	  "s": "00000000000000c8",      // span id, hex
//	  "b": 1000,                    // start, ms
//	  "e": 1500,                    // stop, ms
//	  "d": "read-row",              // description
//	  "r": "RegionServer",          // process id
//	  "p": ["0000000000000032"],    // parent ids, hex
//	  "n": {"retries": "3"},        // key/value annotations
//	  "t": [{"t": 1200, "m": "cache-miss"}]
//	}
package htrace

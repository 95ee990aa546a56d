// Copyright 2022 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package statsd decodes single lines of the StatsD line protocol, including the DogStatsD
extensions for tags and service checks.

Two shapes are understood. Metric lines:

	name:value|type[|@rate][|#key:value,key,...]

where type is one of ms, c, g, m, h, d or s. Service check lines:

	_sc|name|status[|d:timestamp][|h:hostname][|#tags][|m:message]

Parse turns one line into a Message or returns a ParseError. It keeps no state between calls
and can be used from any number of goroutines. Reading lines off a socket, splitting datagrams
and aggregating values are left to the caller.
*/
package statsd

// Copyright 2018-2019 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"fmt"
	"net"
	"strconv"

	gm "github.com/rcrowley/go-metrics"
	"github.com/wavefronthq/wavefront-sdk-go/senders"

	"github.com/wavefronthq/wavefront-statsd-decoder/internal/configuration"
)

const (
	proxyClient  = 1
	directClient = 2
	testClient   = 3
)

const clientTypeKey = "wavefront.sender.type"

// NewClient creates the Wavefront sender described by cfg and records its kind in
// the wavefront.sender.type gauge of registry. Test mode wins over a proxy address,
// which wins over direct ingestion.
func NewClient(cfg configuration.SinkConfig, registry gm.Registry) (senders.Sender, error) {
	clientType := gm.GetOrRegisterGauge(clientTypeKey, registry)
	flushSeconds := int(cfg.FlushInterval.Seconds())

	switch {
	case cfg.TestMode:
		clientType.Update(testClient)
		return NewTestSender(), nil

	case cfg.ProxyAddress != "":
		host, portStr, err := net.SplitHostPort(cfg.ProxyAddress)
		if err != nil {
			return nil, fmt.Errorf("error parsing proxy address: %s", err.Error())
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("error parsing proxy port: %s", err.Error())
		}
		client, err := senders.NewProxySender(&senders.ProxyConfiguration{
			Host:                 host,
			MetricsPort:          port,
			DistributionPort:     port,
			EventsPort:           port,
			FlushIntervalSeconds: flushSeconds,
		})
		if err != nil {
			return nil, fmt.Errorf("error creating proxy sender: %s", err.Error())
		}
		clientType.Update(proxyClient)
		return client, nil

	case cfg.Server != "":
		if len(cfg.Token) == 0 {
			return nil, fmt.Errorf("token missing for Wavefront sink")
		}
		client, err := senders.NewDirectSender(&senders.DirectConfiguration{
			Server:               cfg.Server,
			Token:                cfg.Token,
			BatchSize:            cfg.BatchSize,
			MaxBufferSize:        cfg.MaxBufferSize,
			FlushIntervalSeconds: flushSeconds,
		})
		if err != nil {
			return nil, fmt.Errorf("error creating direct sender: %s", err.Error())
		}
		clientType.Update(directClient)
		return client, nil
	}
	return nil, fmt.Errorf("proxyAddress, server or testMode required for the Wavefront sink")
}

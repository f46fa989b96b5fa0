// Package config loads and validates service configuration for the
// failover engine.
//
// Configuration is read from a YAML file and overlaid with FAILOVER_*
// environment variables. A dotenv file can seed the environment first.
// The file schema mirrors the engine's policy layers:
//
//	name: payments
//	logging:
//	  level: info
//	  format: console
//	providers:
//	  - name: primary
//	  - name: backup
//	    policy:
//	      max_retry: 2
//	policies:
//	  default:
//	    max_retry: 1
//	    base_delay_ms: 200
//	    max_delay_ms: 5000
//	    backoff: full-jitter
//	  per_operation:
//	    charge:
//	      max_retry: 3
//	  per_provider:
//	    backup:
//	      backoff: exponential
//
// Delays are expressed in milliseconds; backoff names match
// backoff.ParseKind.
package config

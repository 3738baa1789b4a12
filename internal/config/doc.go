// Package config provides configuration parsing for the jsonedit server.
//
// The configuration is stored in jsonedit.yaml next to the document it
// serves. JSON is accepted too, since it is valid YAML. This package handles
// loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	document: settings
//	server:
//	  host: localhost
//	  port: 4000
//	store:
//	  url: file://./data
//	feed:
//	  url: mem://changes
//	log:
//	  level: info
//	  format: text
//	metrics:
//	  enabled: true
//	  namespace: jsonedit
//
// A store URL of s3://bucket/prefix uses the AWS SDK directly, with
// store.region and store.endpoint selecting the service.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config

// Package discovery finds DMX USB adapters among the system's serial ports.
//
// Ports are enumerated with go.bug.st/serial/enumerator. A USB port is
// treated as an adapter when its vendor/product ID is in KnownAdapters or its
// USB product string looks like a DMX interface. Enttec DMX USB Pro adapters
// and most clones enumerate as an FTDI FT232R (0403:6001).
//
// # Usage Example
//
//	dev, err := discovery.FindAdapter()
//	if errors.Is(err, discovery.ErrNoAdapter) {
//	    // prompt for --port
//	}
//	fmt.Println(dev.Port)
//
// List everything, adapters first:
//
//	devices, err := discovery.NewScanner().Scan()
//
// Wait for an adapter to be plugged in:
//
//	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
//	defer cancel()
//	dev, err := discovery.NewScanner().WaitForAdapter(ctx)
//
// An FT232R is a generic USB-serial chip, so an unrelated FTDI cable also
// matches. Pass an explicit port when more than one is connected.
package discovery

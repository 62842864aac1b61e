package udptransport

import (
	"sync"
	"time"
)

// updateRTT folds one fresh round-trip sample into *rtt under mu using an
// exponential moving average, the same smoothing shape renet reports via
// RenetClient::rtt (original_source/client/src/net.rs's NetworkHandle::rtt).
func updateRTT(mu *sync.Mutex, rtt *time.Duration, sample time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if *rtt == 0 {
		*rtt = sample
		return
	}
	*rtt = time.Duration(float64(*rtt)*(1-rttSampleWeight) + float64(sample)*rttSampleWeight)
}

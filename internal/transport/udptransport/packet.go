package udptransport

import (
	"fmt"

	"github.com/mazenet/mazenet/internal/wire"
)

// frameKind is the leading byte of every datagram this transport sends,
// distinguishing handshake frames from steady-state data/ack traffic
// sharing the one socket.
type frameKind byte

const (
	frameConnect frameKind = iota
	frameConnectAccept
	frameConnectReject
	frameData
	frameAck
	frameDisconnect
)

// encodeConnect builds the client's connect request: protocol version,
// token expiry, and the HMAC tag proving it holds the shared secret.
func encodeConnect(expiry int64, tag []byte) []byte {
	w := wire.NewWriter(64)
	w.WriteUint8(uint8(frameConnect))
	w.WriteUint64(protocolVersion)
	w.WriteUint64(uint64(expiry))
	w.WriteBytes(tag)
	return w.Bytes()
}

func decodeConnect(data []byte) (protoVersion uint64, expiry int64, tag []byte, err error) {
	r := wire.NewReader(data)
	if protoVersion, err = r.ReadUint64(); err != nil {
		return
	}
	var e uint64
	if e, err = r.ReadUint64(); err != nil {
		return
	}
	expiry = int64(e)
	tag, err = r.ReadBytes()
	return
}

func encodeConnectAccept(id uint64) []byte {
	w := wire.NewWriter(16)
	w.WriteUint8(uint8(frameConnectAccept))
	w.WriteUint64(id)
	return w.Bytes()
}

func decodeConnectAccept(data []byte) (uint64, error) {
	return wire.NewReader(data).ReadUint64()
}

func encodeConnectReject(reason string) []byte {
	w := wire.NewWriter(16 + len(reason))
	w.WriteUint8(uint8(frameConnectReject))
	w.WriteString(reason)
	return w.Bytes()
}

func decodeConnectReject(data []byte) (string, error) {
	return wire.NewReader(data).ReadString()
}

// encodeData frames one message for wire.Channel ch. seq is only
// meaningful (and only ever re-sent) on wire.ChannelReliable; other
// channels always carry seq 0.
func encodeData(ch wire.Channel, seq uint32, payload []byte) []byte {
	w := wire.NewWriter(8 + len(payload))
	w.WriteUint8(uint8(frameData))
	w.WriteUint8(uint8(ch))
	w.WriteUint32(seq)
	w.WriteBytes(payload)
	return w.Bytes()
}

func decodeData(data []byte) (ch wire.Channel, seq uint32, payload []byte, err error) {
	r := wire.NewReader(data)
	var b uint8
	if b, err = r.ReadUint8(); err != nil {
		return
	}
	ch = wire.Channel(b)
	if seq, err = r.ReadUint32(); err != nil {
		return
	}
	payload, err = r.ReadBytes()
	return
}

func encodeAck(ch wire.Channel, seq uint32) []byte {
	w := wire.NewWriter(6)
	w.WriteUint8(uint8(frameAck))
	w.WriteUint8(uint8(ch))
	w.WriteUint32(seq)
	return w.Bytes()
}

func decodeAck(data []byte) (ch wire.Channel, seq uint32, err error) {
	r := wire.NewReader(data)
	var b uint8
	if b, err = r.ReadUint8(); err != nil {
		return
	}
	ch = wire.Channel(b)
	seq, err = r.ReadUint32()
	return
}

func encodeDisconnect(reason string) []byte {
	w := wire.NewWriter(16 + len(reason))
	w.WriteUint8(uint8(frameDisconnect))
	w.WriteString(reason)
	return w.Bytes()
}

func decodeDisconnect(data []byte) (string, error) {
	return wire.NewReader(data).ReadString()
}

// frameKindOf reads the leading byte without consuming the rest of the
// datagram.
func frameKindOf(datagram []byte) (frameKind, []byte, error) {
	if len(datagram) == 0 {
		return 0, nil, fmt.Errorf("udptransport: empty datagram")
	}
	return frameKind(datagram[0]), datagram[1:], nil
}

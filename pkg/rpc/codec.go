package rpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/mem"
)

// CodecName はgRPCのcontent-subtypeとして登録するコーデック名。
// クライアントは grpc.CallContentSubtype(CodecName) を指定して呼び出す。
const CodecName = "json"

// jsonCodec はメッセージ構造体をJSONでエンコードするgRPCコーデック。
type jsonCodec struct{}

func init() {
	encoding.RegisterCodecV2(jsonCodec{})
}

// Marshal はメッセージをJSONにシリアライズする。
func (jsonCodec) Marshal(v any) (mem.BufferSlice, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("メッセージのシリアライズに失敗: %w", err)
	}
	return mem.BufferSlice{mem.SliceBuffer(b)}, nil
}

// Unmarshal はJSONをメッセージにデシリアライズする。
func (jsonCodec) Unmarshal(data mem.BufferSlice, v any) error {
	if err := json.Unmarshal(data.Materialize(), v); err != nil {
		return fmt.Errorf("メッセージのデシリアライズに失敗: %w", err)
	}
	return nil
}

// Name はコーデック名を返す。
func (jsonCodec) Name() string {
	return CodecName
}

package gohlgy

import (
	"github.com/gogo/protobuf/proto"
)

// CatalogState is a catalog's own bookkeeping record.  It lives under a
// reserved key in the db and is rewritten when the catalog closes (or
// when enough mutations accumulate).
type CatalogState struct {
	MajorVers int32 `protobuf:"varint,1,opt,name=major_vers,proto3" json:"major_vers,omitempty"`
	MinorVers int32 `protobuf:"varint,2,opt,name=minor_vers,proto3" json:"minor_vers,omitempty"`

	// NumGraphs[Nv] counts the distinct graph structures on Nv vertices
	// that have at least one result stored.
	NumGraphs []int64 `protobuf:"varint,3,rep,packed,name=num_graphs,proto3" json:"num_graphs,omitempty"`
}

func (m *CatalogState) Reset()         { *m = CatalogState{} }
func (m *CatalogState) String() string { return proto.CompactTextString(m) }
func (*CatalogState) ProtoMessage()    {}

// HomologyRecord is the stored outcome of one homology computation:
// the graph's identity info plus its Betti numbers over one Field.
// It is the value half of a catalog entry (the key is the GraphLSM
// structure encoding plus a field suffix).
type HomologyRecord struct {
	Name      string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	NumVerts  int32  `protobuf:"varint,2,opt,name=num_verts,proto3" json:"num_verts,omitempty"`
	NumEdges  int32  `protobuf:"varint,3,opt,name=num_edges,proto3" json:"num_edges,omitempty"`
	Field     int32  `protobuf:"varint,4,opt,name=field,proto3" json:"field,omitempty"`
	H0        int64  `protobuf:"varint,5,opt,name=h0,proto3" json:"h0,omitempty"`
	H1        int64  `protobuf:"varint,6,opt,name=h1,proto3" json:"h1,omitempty"`
	H2        int64  `protobuf:"varint,7,opt,name=h2,proto3" json:"h2,omitempty"`
	ElapsedUs int64  `protobuf:"varint,8,opt,name=elapsed_us,proto3" json:"elapsed_us,omitempty"`
}

func (m *HomologyRecord) Reset()         { *m = HomologyRecord{} }
func (m *HomologyRecord) String() string { return proto.CompactTextString(m) }
func (*HomologyRecord) ProtoMessage()    {}

// Result repacks the record's Betti numbers.
func (m *HomologyRecord) Result() HomologyResult {
	return HomologyResult{
		H0: m.H0,
		H1: m.H1,
		H2: m.H2,
	}
}

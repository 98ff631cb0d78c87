package grpc

// proto.go defines the gRPC server interface derived from
// agrofin/financing/v1/financing.proto. This file serves as a stand-in
// for buf-generated code. Once `buf generate` is run, replace this file
// with the import from github.com/agrofin/financing-service/api/gen/go/agrofin/financing/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/agrofin/financing-service/internal/application/dto"
)

// Wire messages mirror the application DTOs; the JSON codec carries
// them as-is.
type (
	OriginateDealRequest       = dto.OriginateDealRequest
	ApplyPaymentRequest        = dto.ApplyPaymentRequest
	ResolveLeaseTermRequest    = dto.ResolveLeaseTermRequest
	GetDealRequest             = dto.GetDealRequest
	ListFarmDealsRequest       = dto.ListFarmDealsRequest
	GetScheduleRequest         = dto.GetDealRequest
	RecordMissedPaymentRequest = dto.RecordMissedPaymentRequest
	MarkDefaultedRequest       = dto.MarkDefaultedRequest
	InspectionOptionsRequest   = dto.InspectionOptionsRequest

	DealResponse            = dto.DealResponse
	PaymentResponse         = dto.PaymentResponse
	LeaseResolutionResponse = dto.LeaseResolutionResponse
	ScheduleResponse        = dto.ScheduleResponse
)

// ListFarmDealsResponse wraps the farm's deals.
type ListFarmDealsResponse struct {
	Deals []DealResponse `json:"deals"`
}

// InspectionOptionsResponse wraps the available inspection tiers.
type InspectionOptionsResponse struct {
	Tiers []dto.InspectionTierResponse `json:"tiers"`
}

// FinancingServiceServer is the server API for FinancingService.
// It mirrors the proto-generated interface from agrofin.financing.v1.FinancingService.
type FinancingServiceServer interface {
	OriginateDeal(context.Context, *OriginateDealRequest) (*DealResponse, error)
	ApplyPayment(context.Context, *ApplyPaymentRequest) (*PaymentResponse, error)
	ResolveLeaseTerm(context.Context, *ResolveLeaseTermRequest) (*LeaseResolutionResponse, error)
	GetDeal(context.Context, *GetDealRequest) (*DealResponse, error)
	ListFarmDeals(context.Context, *ListFarmDealsRequest) (*ListFarmDealsResponse, error)
	GetSchedule(context.Context, *GetScheduleRequest) (*ScheduleResponse, error)
	RecordMissedPayment(context.Context, *RecordMissedPaymentRequest) (*DealResponse, error)
	MarkDefaulted(context.Context, *MarkDefaultedRequest) (*DealResponse, error)
	GetInspectionOptions(context.Context, *InspectionOptionsRequest) (*InspectionOptionsResponse, error)
	mustEmbedUnimplementedFinancingServiceServer()
}

// UnimplementedFinancingServiceServer provides forward-compatible default implementations.
type UnimplementedFinancingServiceServer struct{}

func (UnimplementedFinancingServiceServer) OriginateDeal(context.Context, *OriginateDealRequest) (*DealResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method OriginateDeal not implemented")
}
func (UnimplementedFinancingServiceServer) ApplyPayment(context.Context, *ApplyPaymentRequest) (*PaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ApplyPayment not implemented")
}
func (UnimplementedFinancingServiceServer) ResolveLeaseTerm(context.Context, *ResolveLeaseTermRequest) (*LeaseResolutionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ResolveLeaseTerm not implemented")
}
func (UnimplementedFinancingServiceServer) GetDeal(context.Context, *GetDealRequest) (*DealResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDeal not implemented")
}
func (UnimplementedFinancingServiceServer) ListFarmDeals(context.Context, *ListFarmDealsRequest) (*ListFarmDealsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListFarmDeals not implemented")
}
func (UnimplementedFinancingServiceServer) GetSchedule(context.Context, *GetScheduleRequest) (*ScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSchedule not implemented")
}
func (UnimplementedFinancingServiceServer) RecordMissedPayment(context.Context, *RecordMissedPaymentRequest) (*DealResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordMissedPayment not implemented")
}
func (UnimplementedFinancingServiceServer) MarkDefaulted(context.Context, *MarkDefaultedRequest) (*DealResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method MarkDefaulted not implemented")
}
func (UnimplementedFinancingServiceServer) GetInspectionOptions(context.Context, *InspectionOptionsRequest) (*InspectionOptionsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetInspectionOptions not implemented")
}
func (UnimplementedFinancingServiceServer) mustEmbedUnimplementedFinancingServiceServer() {}

// RegisterFinancingServiceServer registers the FinancingServiceServer with the gRPC server.
func RegisterFinancingServiceServer(s *grpclib.Server, srv FinancingServiceServer) {
	s.RegisterService(&_FinancingService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _FinancingService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "agrofin.financing.v1.FinancingService",
	HandlerType: (*FinancingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "OriginateDeal", Handler: _FinancingService_OriginateDeal_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "ApplyPayment", Handler: _FinancingService_ApplyPayment_Handler},                 //nolint:revive // gRPC handler registration
		{MethodName: "ResolveLeaseTerm", Handler: _FinancingService_ResolveLeaseTerm_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "GetDeal", Handler: _FinancingService_GetDeal_Handler},                           //nolint:revive // gRPC handler registration
		{MethodName: "ListFarmDeals", Handler: _FinancingService_ListFarmDeals_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "GetSchedule", Handler: _FinancingService_GetSchedule_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "RecordMissedPayment", Handler: _FinancingService_RecordMissedPayment_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "MarkDefaulted", Handler: _FinancingService_MarkDefaulted_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "GetInspectionOptions", Handler: _FinancingService_GetInspectionOptions_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_OriginateDeal_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(OriginateDealRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).OriginateDeal(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/agrofin.financing.v1.FinancingService/OriginateDeal",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).OriginateDeal(ctx, req.(*OriginateDealRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_ApplyPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ApplyPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).ApplyPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/agrofin.financing.v1.FinancingService/ApplyPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).ApplyPayment(ctx, req.(*ApplyPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_ResolveLeaseTerm_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ResolveLeaseTermRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).ResolveLeaseTerm(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/agrofin.financing.v1.FinancingService/ResolveLeaseTerm",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).ResolveLeaseTerm(ctx, req.(*ResolveLeaseTermRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_GetDeal_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetDealRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).GetDeal(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/agrofin.financing.v1.FinancingService/GetDeal",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).GetDeal(ctx, req.(*GetDealRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_ListFarmDeals_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListFarmDealsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).ListFarmDeals(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/agrofin.financing.v1.FinancingService/ListFarmDeals",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).ListFarmDeals(ctx, req.(*ListFarmDealsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_GetSchedule_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetScheduleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).GetSchedule(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/agrofin.financing.v1.FinancingService/GetSchedule",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).GetSchedule(ctx, req.(*GetScheduleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_RecordMissedPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RecordMissedPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).RecordMissedPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/agrofin.financing.v1.FinancingService/RecordMissedPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).RecordMissedPayment(ctx, req.(*RecordMissedPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_MarkDefaulted_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(MarkDefaultedRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).MarkDefaulted(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/agrofin.financing.v1.FinancingService/MarkDefaulted",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).MarkDefaulted(ctx, req.(*MarkDefaultedRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_GetInspectionOptions_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(InspectionOptionsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).GetInspectionOptions(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/agrofin.financing.v1.FinancingService/GetInspectionOptions",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).GetInspectionOptions(ctx, req.(*InspectionOptionsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

package grpc

// Hand-written equivalent of the generated bindings for agricredit.v1.AgriCreditService.
// Messages are the application DTOs carried over the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/agricredit/internal/application/dto"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "agricredit.v1.AgriCreditService"

// AgriCreditServiceServer is the server API for AgriCreditService.
type AgriCreditServiceServer interface {
	AssessFarmer(context.Context, *dto.AssessFarmerRequest) (*dto.AssessmentResponse, error)
	GetAssessment(context.Context, *dto.GetAssessmentRequest) (*dto.AssessmentResponse, error)
	ListFarmerAssessments(context.Context, *dto.ListFarmerAssessmentsRequest) (*dto.ListAssessmentsResponse, error)
	ExportReport(context.Context, *dto.ExportReportRequest) (*dto.ReportResponse, error)
	CalculateLoan(context.Context, *dto.CalculateLoanRequest) (*dto.LoanCalculationResponse, error)
	mustEmbedUnimplementedAgriCreditServiceServer()
}

// UnimplementedAgriCreditServiceServer provides forward-compatible default implementations.
type UnimplementedAgriCreditServiceServer struct{}

func (UnimplementedAgriCreditServiceServer) AssessFarmer(context.Context, *dto.AssessFarmerRequest) (*dto.AssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessFarmer not implemented")
}
func (UnimplementedAgriCreditServiceServer) GetAssessment(context.Context, *dto.GetAssessmentRequest) (*dto.AssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAssessment not implemented")
}
func (UnimplementedAgriCreditServiceServer) ListFarmerAssessments(context.Context, *dto.ListFarmerAssessmentsRequest) (*dto.ListAssessmentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListFarmerAssessments not implemented")
}
func (UnimplementedAgriCreditServiceServer) ExportReport(context.Context, *dto.ExportReportRequest) (*dto.ReportResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ExportReport not implemented")
}
func (UnimplementedAgriCreditServiceServer) CalculateLoan(context.Context, *dto.CalculateLoanRequest) (*dto.LoanCalculationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CalculateLoan not implemented")
}
func (UnimplementedAgriCreditServiceServer) mustEmbedUnimplementedAgriCreditServiceServer() {}

// RegisterAgriCreditServiceServer registers srv with the gRPC server.
func RegisterAgriCreditServiceServer(s grpclib.ServiceRegistrar, srv AgriCreditServiceServer) {
	s.RegisterService(&agriCreditServiceDesc, srv)
}

var agriCreditServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AgriCreditServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AssessFarmer", Handler: assessFarmerHandler},
		{MethodName: "GetAssessment", Handler: getAssessmentHandler},
		{MethodName: "ListFarmerAssessments", Handler: listFarmerAssessmentsHandler},
		{MethodName: "ExportReport", Handler: exportReportHandler},
		{MethodName: "CalculateLoan", Handler: calculateLoanHandler},
	},
	Streams: []grpclib.StreamDesc{},
}

func assessFarmerHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(dto.AssessFarmerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AgriCreditServiceServer).AssessFarmer(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/AssessFarmer",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AgriCreditServiceServer).AssessFarmer(ctx, req.(*dto.AssessFarmerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getAssessmentHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(dto.GetAssessmentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AgriCreditServiceServer).GetAssessment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/GetAssessment",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AgriCreditServiceServer).GetAssessment(ctx, req.(*dto.GetAssessmentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func listFarmerAssessmentsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(dto.ListFarmerAssessmentsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AgriCreditServiceServer).ListFarmerAssessments(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/ListFarmerAssessments",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AgriCreditServiceServer).ListFarmerAssessments(ctx, req.(*dto.ListFarmerAssessmentsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func exportReportHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(dto.ExportReportRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AgriCreditServiceServer).ExportReport(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/ExportReport",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AgriCreditServiceServer).ExportReport(ctx, req.(*dto.ExportReportRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func calculateLoanHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(dto.CalculateLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AgriCreditServiceServer).CalculateLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/CalculateLoan",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AgriCreditServiceServer).CalculateLoan(ctx, req.(*dto.CalculateLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

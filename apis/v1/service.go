package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const PRDServiceName = "prd.v1.PRDService"

const (
	PRDService_CreatePRD_FullMethodName         = "/" + PRDServiceName + "/CreatePRD"
	PRDService_GeneratePRD_FullMethodName       = "/" + PRDServiceName + "/GeneratePRD"
	PRDService_GetPRD_FullMethodName            = "/" + PRDServiceName + "/GetPRD"
	PRDService_ListPRDs_FullMethodName          = "/" + PRDServiceName + "/ListPRDs"
	PRDService_UpdatePRD_FullMethodName         = "/" + PRDServiceName + "/UpdatePRD"
	PRDService_DeletePRD_FullMethodName         = "/" + PRDServiceName + "/DeletePRD"
	PRDService_RegeneratePRD_FullMethodName     = "/" + PRDServiceName + "/RegeneratePRD"
	PRDService_UpdateSection_FullMethodName     = "/" + PRDServiceName + "/UpdateSection"
	PRDService_ReorderSections_FullMethodName   = "/" + PRDServiceName + "/ReorderSections"
	PRDService_CreateVersion_FullMethodName     = "/" + PRDServiceName + "/CreateVersion"
	PRDService_ListVersions_FullMethodName      = "/" + PRDServiceName + "/ListVersions"
	PRDService_GetVersion_FullMethodName        = "/" + PRDServiceName + "/GetVersion"
	PRDService_AddComment_FullMethodName        = "/" + PRDServiceName + "/AddComment"
	PRDService_ListComments_FullMethodName      = "/" + PRDServiceName + "/ListComments"
	PRDService_DeleteComment_FullMethodName     = "/" + PRDServiceName + "/DeleteComment"
	PRDService_SyncUser_FullMethodName          = "/" + PRDServiceName + "/SyncUser"
	PRDService_GetDashboardStats_FullMethodName = "/" + PRDServiceName + "/GetDashboardStats"
)

// PRDServiceServer is the server API for the PRD service.
type PRDServiceServer interface {
	CreatePRD(context.Context, *CreatePRDRequest) (*CreatePRDResponse, error)
	GeneratePRD(context.Context, *GeneratePRDRequest) (*GeneratePRDResponse, error)
	GetPRD(context.Context, *GetPRDRequest) (*GetPRDResponse, error)
	ListPRDs(context.Context, *ListPRDsRequest) (*ListPRDsResponse, error)
	UpdatePRD(context.Context, *UpdatePRDRequest) (*UpdatePRDResponse, error)
	DeletePRD(context.Context, *DeletePRDRequest) (*DeletePRDResponse, error)
	RegeneratePRD(context.Context, *RegeneratePRDRequest) (*RegeneratePRDResponse, error)
	UpdateSection(context.Context, *UpdateSectionRequest) (*UpdateSectionResponse, error)
	ReorderSections(context.Context, *ReorderSectionsRequest) (*ReorderSectionsResponse, error)
	CreateVersion(context.Context, *CreateVersionRequest) (*CreateVersionResponse, error)
	ListVersions(context.Context, *ListVersionsRequest) (*ListVersionsResponse, error)
	GetVersion(context.Context, *GetVersionRequest) (*GetVersionResponse, error)
	AddComment(context.Context, *AddCommentRequest) (*AddCommentResponse, error)
	ListComments(context.Context, *ListCommentsRequest) (*ListCommentsResponse, error)
	DeleteComment(context.Context, *DeleteCommentRequest) (*DeleteCommentResponse, error)
	SyncUser(context.Context, *SyncUserRequest) (*SyncUserResponse, error)
	GetDashboardStats(context.Context, *GetDashboardStatsRequest) (*GetDashboardStatsResponse, error)
}

// UnimplementedPRDServiceServer can be embedded to have forward compatible implementations.
type UnimplementedPRDServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedPRDServiceServer) CreatePRD(context.Context, *CreatePRDRequest) (*CreatePRDResponse, error) {
	return nil, unimplemented("CreatePRD")
}
func (UnimplementedPRDServiceServer) GeneratePRD(context.Context, *GeneratePRDRequest) (*GeneratePRDResponse, error) {
	return nil, unimplemented("GeneratePRD")
}
func (UnimplementedPRDServiceServer) GetPRD(context.Context, *GetPRDRequest) (*GetPRDResponse, error) {
	return nil, unimplemented("GetPRD")
}
func (UnimplementedPRDServiceServer) ListPRDs(context.Context, *ListPRDsRequest) (*ListPRDsResponse, error) {
	return nil, unimplemented("ListPRDs")
}
func (UnimplementedPRDServiceServer) UpdatePRD(context.Context, *UpdatePRDRequest) (*UpdatePRDResponse, error) {
	return nil, unimplemented("UpdatePRD")
}
func (UnimplementedPRDServiceServer) DeletePRD(context.Context, *DeletePRDRequest) (*DeletePRDResponse, error) {
	return nil, unimplemented("DeletePRD")
}
func (UnimplementedPRDServiceServer) RegeneratePRD(context.Context, *RegeneratePRDRequest) (*RegeneratePRDResponse, error) {
	return nil, unimplemented("RegeneratePRD")
}
func (UnimplementedPRDServiceServer) UpdateSection(context.Context, *UpdateSectionRequest) (*UpdateSectionResponse, error) {
	return nil, unimplemented("UpdateSection")
}
func (UnimplementedPRDServiceServer) ReorderSections(context.Context, *ReorderSectionsRequest) (*ReorderSectionsResponse, error) {
	return nil, unimplemented("ReorderSections")
}
func (UnimplementedPRDServiceServer) CreateVersion(context.Context, *CreateVersionRequest) (*CreateVersionResponse, error) {
	return nil, unimplemented("CreateVersion")
}
func (UnimplementedPRDServiceServer) ListVersions(context.Context, *ListVersionsRequest) (*ListVersionsResponse, error) {
	return nil, unimplemented("ListVersions")
}
func (UnimplementedPRDServiceServer) GetVersion(context.Context, *GetVersionRequest) (*GetVersionResponse, error) {
	return nil, unimplemented("GetVersion")
}
func (UnimplementedPRDServiceServer) AddComment(context.Context, *AddCommentRequest) (*AddCommentResponse, error) {
	return nil, unimplemented("AddComment")
}
func (UnimplementedPRDServiceServer) ListComments(context.Context, *ListCommentsRequest) (*ListCommentsResponse, error) {
	return nil, unimplemented("ListComments")
}
func (UnimplementedPRDServiceServer) DeleteComment(context.Context, *DeleteCommentRequest) (*DeleteCommentResponse, error) {
	return nil, unimplemented("DeleteComment")
}
func (UnimplementedPRDServiceServer) SyncUser(context.Context, *SyncUserRequest) (*SyncUserResponse, error) {
	return nil, unimplemented("SyncUser")
}
func (UnimplementedPRDServiceServer) GetDashboardStats(context.Context, *GetDashboardStatsRequest) (*GetDashboardStatsResponse, error) {
	return nil, unimplemented("GetDashboardStats")
}

// unaryMethod builds the method descriptor for one unary rpc of the service.
func unaryMethod[Req any, Resp any](name string, call func(PRDServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + PRDServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PRDServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(PRDServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// PRDService_ServiceDesc is the grpc.ServiceDesc for the PRD service.
var PRDService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: PRDServiceName,
	HandlerType: (*PRDServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("CreatePRD", PRDServiceServer.CreatePRD),
		unaryMethod("GeneratePRD", PRDServiceServer.GeneratePRD),
		unaryMethod("GetPRD", PRDServiceServer.GetPRD),
		unaryMethod("ListPRDs", PRDServiceServer.ListPRDs),
		unaryMethod("UpdatePRD", PRDServiceServer.UpdatePRD),
		unaryMethod("DeletePRD", PRDServiceServer.DeletePRD),
		unaryMethod("RegeneratePRD", PRDServiceServer.RegeneratePRD),
		unaryMethod("UpdateSection", PRDServiceServer.UpdateSection),
		unaryMethod("ReorderSections", PRDServiceServer.ReorderSections),
		unaryMethod("CreateVersion", PRDServiceServer.CreateVersion),
		unaryMethod("ListVersions", PRDServiceServer.ListVersions),
		unaryMethod("GetVersion", PRDServiceServer.GetVersion),
		unaryMethod("AddComment", PRDServiceServer.AddComment),
		unaryMethod("ListComments", PRDServiceServer.ListComments),
		unaryMethod("DeleteComment", PRDServiceServer.DeleteComment),
		unaryMethod("SyncUser", PRDServiceServer.SyncUser),
		unaryMethod("GetDashboardStats", PRDServiceServer.GetDashboardStats),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "apis/v1/service.go",
}

func RegisterPRDServiceServer(s grpc.ServiceRegistrar, srv PRDServiceServer) {
	s.RegisterService(&PRDService_ServiceDesc, srv)
}

// PRDServiceClient is the client API for the PRD service. Every call is
// encoded with the JSON codec.
type PRDServiceClient interface {
	CreatePRD(ctx context.Context, in *CreatePRDRequest, opts ...grpc.CallOption) (*CreatePRDResponse, error)
	GeneratePRD(ctx context.Context, in *GeneratePRDRequest, opts ...grpc.CallOption) (*GeneratePRDResponse, error)
	GetPRD(ctx context.Context, in *GetPRDRequest, opts ...grpc.CallOption) (*GetPRDResponse, error)
	ListPRDs(ctx context.Context, in *ListPRDsRequest, opts ...grpc.CallOption) (*ListPRDsResponse, error)
	UpdatePRD(ctx context.Context, in *UpdatePRDRequest, opts ...grpc.CallOption) (*UpdatePRDResponse, error)
	DeletePRD(ctx context.Context, in *DeletePRDRequest, opts ...grpc.CallOption) (*DeletePRDResponse, error)
	RegeneratePRD(ctx context.Context, in *RegeneratePRDRequest, opts ...grpc.CallOption) (*RegeneratePRDResponse, error)
	UpdateSection(ctx context.Context, in *UpdateSectionRequest, opts ...grpc.CallOption) (*UpdateSectionResponse, error)
	ReorderSections(ctx context.Context, in *ReorderSectionsRequest, opts ...grpc.CallOption) (*ReorderSectionsResponse, error)
	CreateVersion(ctx context.Context, in *CreateVersionRequest, opts ...grpc.CallOption) (*CreateVersionResponse, error)
	ListVersions(ctx context.Context, in *ListVersionsRequest, opts ...grpc.CallOption) (*ListVersionsResponse, error)
	GetVersion(ctx context.Context, in *GetVersionRequest, opts ...grpc.CallOption) (*GetVersionResponse, error)
	AddComment(ctx context.Context, in *AddCommentRequest, opts ...grpc.CallOption) (*AddCommentResponse, error)
	ListComments(ctx context.Context, in *ListCommentsRequest, opts ...grpc.CallOption) (*ListCommentsResponse, error)
	DeleteComment(ctx context.Context, in *DeleteCommentRequest, opts ...grpc.CallOption) (*DeleteCommentResponse, error)
	SyncUser(ctx context.Context, in *SyncUserRequest, opts ...grpc.CallOption) (*SyncUserResponse, error)
	GetDashboardStats(ctx context.Context, in *GetDashboardStatsRequest, opts ...grpc.CallOption) (*GetDashboardStatsResponse, error)
}

type prdServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPRDServiceClient(cc grpc.ClientConnInterface) PRDServiceClient {
	return &prdServiceClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *prdServiceClient) CreatePRD(ctx context.Context, in *CreatePRDRequest, opts ...grpc.CallOption) (*CreatePRDResponse, error) {
	return invoke[CreatePRDResponse](ctx, c.cc, PRDService_CreatePRD_FullMethodName, in, opts)
}

func (c *prdServiceClient) GeneratePRD(ctx context.Context, in *GeneratePRDRequest, opts ...grpc.CallOption) (*GeneratePRDResponse, error) {
	return invoke[GeneratePRDResponse](ctx, c.cc, PRDService_GeneratePRD_FullMethodName, in, opts)
}

func (c *prdServiceClient) GetPRD(ctx context.Context, in *GetPRDRequest, opts ...grpc.CallOption) (*GetPRDResponse, error) {
	return invoke[GetPRDResponse](ctx, c.cc, PRDService_GetPRD_FullMethodName, in, opts)
}

func (c *prdServiceClient) ListPRDs(ctx context.Context, in *ListPRDsRequest, opts ...grpc.CallOption) (*ListPRDsResponse, error) {
	return invoke[ListPRDsResponse](ctx, c.cc, PRDService_ListPRDs_FullMethodName, in, opts)
}

func (c *prdServiceClient) UpdatePRD(ctx context.Context, in *UpdatePRDRequest, opts ...grpc.CallOption) (*UpdatePRDResponse, error) {
	return invoke[UpdatePRDResponse](ctx, c.cc, PRDService_UpdatePRD_FullMethodName, in, opts)
}

func (c *prdServiceClient) DeletePRD(ctx context.Context, in *DeletePRDRequest, opts ...grpc.CallOption) (*DeletePRDResponse, error) {
	return invoke[DeletePRDResponse](ctx, c.cc, PRDService_DeletePRD_FullMethodName, in, opts)
}

func (c *prdServiceClient) RegeneratePRD(ctx context.Context, in *RegeneratePRDRequest, opts ...grpc.CallOption) (*RegeneratePRDResponse, error) {
	return invoke[RegeneratePRDResponse](ctx, c.cc, PRDService_RegeneratePRD_FullMethodName, in, opts)
}

func (c *prdServiceClient) UpdateSection(ctx context.Context, in *UpdateSectionRequest, opts ...grpc.CallOption) (*UpdateSectionResponse, error) {
	return invoke[UpdateSectionResponse](ctx, c.cc, PRDService_UpdateSection_FullMethodName, in, opts)
}

func (c *prdServiceClient) ReorderSections(ctx context.Context, in *ReorderSectionsRequest, opts ...grpc.CallOption) (*ReorderSectionsResponse, error) {
	return invoke[ReorderSectionsResponse](ctx, c.cc, PRDService_ReorderSections_FullMethodName, in, opts)
}

func (c *prdServiceClient) CreateVersion(ctx context.Context, in *CreateVersionRequest, opts ...grpc.CallOption) (*CreateVersionResponse, error) {
	return invoke[CreateVersionResponse](ctx, c.cc, PRDService_CreateVersion_FullMethodName, in, opts)
}

func (c *prdServiceClient) ListVersions(ctx context.Context, in *ListVersionsRequest, opts ...grpc.CallOption) (*ListVersionsResponse, error) {
	return invoke[ListVersionsResponse](ctx, c.cc, PRDService_ListVersions_FullMethodName, in, opts)
}

func (c *prdServiceClient) GetVersion(ctx context.Context, in *GetVersionRequest, opts ...grpc.CallOption) (*GetVersionResponse, error) {
	return invoke[GetVersionResponse](ctx, c.cc, PRDService_GetVersion_FullMethodName, in, opts)
}

func (c *prdServiceClient) AddComment(ctx context.Context, in *AddCommentRequest, opts ...grpc.CallOption) (*AddCommentResponse, error) {
	return invoke[AddCommentResponse](ctx, c.cc, PRDService_AddComment_FullMethodName, in, opts)
}

func (c *prdServiceClient) ListComments(ctx context.Context, in *ListCommentsRequest, opts ...grpc.CallOption) (*ListCommentsResponse, error) {
	return invoke[ListCommentsResponse](ctx, c.cc, PRDService_ListComments_FullMethodName, in, opts)
}

func (c *prdServiceClient) DeleteComment(ctx context.Context, in *DeleteCommentRequest, opts ...grpc.CallOption) (*DeleteCommentResponse, error) {
	return invoke[DeleteCommentResponse](ctx, c.cc, PRDService_DeleteComment_FullMethodName, in, opts)
}

func (c *prdServiceClient) SyncUser(ctx context.Context, in *SyncUserRequest, opts ...grpc.CallOption) (*SyncUserResponse, error) {
	return invoke[SyncUserResponse](ctx, c.cc, PRDService_SyncUser_FullMethodName, in, opts)
}

func (c *prdServiceClient) GetDashboardStats(ctx context.Context, in *GetDashboardStatsRequest, opts ...grpc.CallOption) (*GetDashboardStatsResponse, error) {
	return invoke[GetDashboardStatsResponse](ctx, c.cc, PRDService_GetDashboardStats_FullMethodName, in, opts)
}

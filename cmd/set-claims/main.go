// Operator tool: stamp role custom claims on a Firebase user so the
// token itself carries authorization. Super admins get {role}, gym
// admins get {role, gymId}.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"

	"gym-console/backend/internal/domain/user"
)

func main() {
	uid := flag.String("uid", "", "target firebase uid")
	role := flag.String("role", "", "role to grant: superAdmin or gymAdmin")
	gymID := flag.String("gymId", "", "gym id (required for gymAdmin)")
	flag.Parse()

	if *uid == "" {
		log.Fatal("uid is required: -uid=xxxxx")
	}
	switch *role {
	case user.RoleSuperAdmin:
	case user.RoleGymAdmin:
		if *gymID == "" {
			log.Fatal("gymId is required for gymAdmin: -gymId=xxxxx")
		}
	default:
		log.Fatalf("role must be %s or %s", user.RoleSuperAdmin, user.RoleGymAdmin)
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil)
	if err != nil {
		log.Fatalf("firebase.NewApp: %v", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("app.Auth: %v", err)
	}

	claims := map[string]interface{}{"role": *role}
	if *role == user.RoleGymAdmin {
		claims["gymId"] = *gymID
	}

	if err := authClient.SetCustomUserClaims(ctx, *uid, claims); err != nil {
		log.Fatalf("SetCustomUserClaims: %v", err)
	}

	fmt.Printf("ok: %s claims set for %s\n", *role, *uid)
}
